package codegen

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pinmagik/pinmagik/pkg/buildinfo"
)

const scriptTemplate = `#!/usr/bin/env python
# Generated by PinMagik {{ .Version }} for {{ .Target }}.
# Edits are lost on recompile.

import signal
from sys import exit
from time import sleep, time

import RPi.GPIO as GPIO

PERIOD = {{ .Period }}

state = {}


def init():
    GPIO.setmode(GPIO.BCM)
{{ .Init | trimSuffix "\n" | indent 4 }}


def loopstep():
{{ .Loop | trimSuffix "\n" | indent 4 }}
    pass


def terminate(signum, frame):
    exit(0)


if __name__ == "__main__":
    signal.signal(signal.SIGTERM, terminate)
    try:
        init()
        while True:
            loopstep()
            sleep(PERIOD)
    except KeyboardInterrupt:
        pass
    finally:
        GPIO.cleanup()
`

var script = template.Must(template.New("script").Funcs(sprig.TxtFuncMap()).Parse(scriptTemplate))

type scriptData struct {
	Version string
	Target  string
	Period  string
	Init    string
	Loop    string
}

func render(s *Script, opts Options) (string, error) {
	var b strings.Builder
	err := script.Execute(&b, scriptData{
		Version: buildinfo.Short(),
		Target:  opts.Target,
		Period:  strconv.FormatFloat(opts.Period.Seconds(), 'f', -1, 64),
		Init:    s.Init,
		Loop:    s.Loop,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
