// Package output renders command results and maps errors to exit codes.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/resio/resio-cli/internal/apierr"
	"github.com/resio/resio-cli/internal/resio"
	"github.com/resio/resio-cli/internal/secure"
)

// Exit codes, kept stable for scripting.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitUsage      = 2
	ExitAuth       = 3
	ExitNetwork    = 4
	ExitValidation = 5
	ExitStorage    = 6
)

// Format names accepted by --format.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatQuiet = "quiet"
)

// Writer renders values in the configured format.
type Writer struct {
	out    io.Writer
	format string
}

// NewWriter returns a Writer. Unknown formats render as JSON.
func NewWriter(out io.Writer, format string) *Writer {
	return &Writer{out: out, format: format}
}

// OK renders a successful result.
func (w *Writer) OK(v any) error {
	switch w.format {
	case FormatQuiet:
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// errEnvelope is the rendered error shape.
type errEnvelope struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Details any    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Err renders an error in the configured format.
func (w *Writer) Err(err error) {
	env := errEnvelope{Code: "ERROR", Message: err.Error()}
	if e, ok := apierr.As(err); ok {
		env.Code = e.Code
		env.Message = e.Message
		env.Details = e.Details
	}
	var verr *resio.ValidationError
	if errors.As(err, &verr) {
		env.Code = "VALIDATION_ERROR"
	}

	if w.format == FormatYAML {
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		_ = enc.Encode(map[string]errEnvelope{"error": env})
		_ = enc.Close()
		return
	}
	data, merr := json.MarshalIndent(map[string]errEnvelope{"error": env}, "", "  ")
	if merr != nil {
		fmt.Fprintf(w.out, `{"error": {"code": "ERROR", "message": %q}}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(w.out, string(data))
}

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var verr *resio.ValidationError
	if errors.As(err, &verr) {
		return ExitValidation
	}
	var serr *secure.StorageError
	if errors.As(err, &serr) {
		return ExitStorage
	}
	if e, ok := apierr.As(err); ok {
		switch {
		case e.Code == apierr.CodeNetwork:
			return ExitNetwork
		case e.HTTPStatus == 401 || e.HTTPStatus == 403:
			return ExitAuth
		}
	}
	return ExitError
}
