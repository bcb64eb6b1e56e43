package io

import (
	"bytes"
	"io"
	"os"
	"strings"

	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/resolution"
)

// Format names an input format.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatGradle Format = "gradle"
)

// ParseFormat accepts "auto", "json", "gradle" and "text" (an alias for
// gradle). The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "gradle", "text", "txt":
		return FormatGradle, nil
	}
	return "", composeerr.New(composeerr.ErrCodeUnsupported, "unknown input format %q", s)
}

// Detect guesses the format of data: a leading '{' means JSON.
func Detect(data []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatGradle
}

// Load parses data in the given format. Results without a configuration
// name take it from fallback, and results whose input did not name a
// project take fallback's project path.
func Load(data []byte, format Format, fallback resolution.Target) ([]*resolution.Result, error) {
	if format == FormatAuto || format == "" {
		format = Detect(data)
	}

	var results []*resolution.Result
	switch format {
	case FormatJSON:
		res, err := ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		results = []*resolution.Result{res}
	case FormatGradle:
		var err error
		if results, err = ReadGradleReport(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	default:
		return nil, composeerr.New(composeerr.ErrCodeUnsupported, "unknown input format %q", format)
	}

	for _, r := range results {
		if !r.ProjectNamed {
			r.Target.ProjectPath = fallback.ProjectPath
		}
		if r.Target.Configuration == "" {
			r.Target.Configuration = fallback.Configuration
		}
	}
	return results, nil
}

// LoadFile reads path, or stdin when path is "-", and parses it with [Load].
func LoadFile(path string, format Format, fallback resolution.Target) ([]*resolution.Result, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		var f *os.File
		if f, err = open(path); err != nil {
			return nil, err
		}
		defer f.Close()
		data, err = io.ReadAll(f)
	}
	if err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Load(data, format, fallback)
}
