package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pinmagik/pinmagik/pkg/errors"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://pinmagik.github.io/schema/document.json"

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema documents are validated against.
func Schema() string { return schemaJSON }

// ReadDocument decodes a document from r.
//
// The input is validated against [Schema] first. Any syntax or schema
// failure is reported as MALFORMED_DOCUMENT. ReadDocument does not close r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode")
	}

	schema, err := documentSchema()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compile document schema")
	}
	if err := schema.Validate(raw); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return nil, errors.New(errors.ErrCodeMalformedDocument, "%s", validationMessage(ve))
		}
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "validate")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode")
	}
	return &doc, nil
}

// validationMessage reports the innermost failure, which names the
// offending location.
func validationMessage(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}

// WriteDocument encodes doc as indented JSON to w.
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportDocument reads the document file at path.
func ImportDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// ExportDocument writes doc to a file at path, replacing it.
func ExportDocument(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDocument(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
