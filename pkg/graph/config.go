package graph

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// EncodeConfig converts a tagged config struct into a [Config].
// Fields use `mapstructure` tags; omitempty fields are left out.
func EncodeConfig(in any) (Config, error) {
	out := map[string]any{}
	if err := mapstructure.Decode(in, &out); err != nil {
		return nil, err
	}
	return Config(out), nil
}

// DecodeConfig fills the struct pointed to by out from cfg.
// Numbers decoded from JSON arrive as float64; they fill integer fields
// only when they are whole. A single value fills a list field as a list of
// one. Unknown keys and mismatched types are an error.
func DecodeConfig(cfg Config, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(singleToListHook, wholeNumberHook),
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(cfg))
}

func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return nil, fmt.Errorf("%v is not a whole number", data)
	}
	return int64(f), nil
}

func singleToListHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || from.Kind() == reflect.Slice || from.Kind() == reflect.Array {
		return data, nil
	}
	return []any{data}, nil
}
