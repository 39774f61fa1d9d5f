package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resio/resio-cli/internal/apierr"
	"github.com/resio/resio-cli/internal/resio"
	"github.com/resio/resio-cli/internal/secure"
)

func TestOKJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)

	require.NoError(t, w.OK(map[string]int{"count": 5}))
	assert.JSONEq(t, `{"count": 5}`, buf.String())
}

func TestOKYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatYAML)

	require.NoError(t, w.OK(map[string]int{"count": 5}))
	assert.Equal(t, "count: 5\n", buf.String())
}

func TestOKQuiet(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatQuiet)

	require.NoError(t, w.OK(map[string]int{"count": 5}))
	assert.Empty(t, buf.String())
}

func TestErrNormalizedShape(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)

	w.Err(apierr.FromResponse(404, []byte(`{"code": "404", "message": "Not found"}`)))

	assert.JSONEq(t, `{"error": {"code": "404", "message": "Not found"}}`, buf.String())
}

func TestErrValidation(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)

	w.Err(&resio.ValidationError{Field: "email", Reason: "is required"})

	assert.Contains(t, buf.String(), "VALIDATION_ERROR")
	assert.Contains(t, buf.String(), "email: is required")
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitError},
		{"network", apierr.Network(errors.New("refused")), ExitNetwork},
		{"unauthorized", apierr.FromResponse(401, nil), ExitAuth},
		{"forbidden", apierr.FromResponse(403, nil), ExitAuth},
		{"server error", apierr.FromResponse(500, nil), ExitError},
		{"validation", &resio.ValidationError{Field: "email", Reason: "bad"}, ExitValidation},
		{"storage", &secure.StorageError{Op: "save", Cause: errors.New("denied")}, ExitStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}
