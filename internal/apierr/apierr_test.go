package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponseServerBody(t *testing.T) {
	body := []byte(`{"code": "404", "message": "Not found"}`)

	e := FromResponse(404, body)

	assert.Equal(t, "404", e.Code)
	assert.Equal(t, "Not found", e.Message)
	assert.Nil(t, e.Details)
	assert.Equal(t, 404, e.HTTPStatus)
}

func TestFromResponseDetails(t *testing.T) {
	body := []byte(`{"code": "LEASE_EXPIRED", "message": "Lease has expired", "details": {"leaseId": 7}}`)

	e := FromResponse(409, body)

	assert.Equal(t, "LEASE_EXPIRED", e.Code)
	assert.Equal(t, "Lease has expired", e.Message)
	require.NotNil(t, e.Details)
	details, ok := e.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), details["leaseId"])
}

func TestFromResponseFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    []byte
		code    string
		message string
	}{
		{
			name:    "empty body",
			status:  500,
			body:    nil,
			code:    "500",
			message: "Request failed (HTTP 500)",
		},
		{
			name:    "non-JSON body",
			status:  502,
			body:    []byte("<html>Bad Gateway</html>"),
			code:    "502",
			message: "Request failed (HTTP 502)",
		},
		{
			name:    "error field instead of message",
			status:  422,
			body:    []byte(`{"error": "email is taken"}`),
			code:    "422",
			message: "email is taken",
		},
		{
			name:    "code without message",
			status:  403,
			body:    []byte(`{"code": "NOT_ALLOWED"}`),
			code:    "NOT_ALLOWED",
			message: "Request failed (HTTP 403)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromResponse(tt.status, tt.body)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.status, e.HTTPStatus)
		})
	}
}

func TestNetwork(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	e := Network(cause)

	assert.Equal(t, CodeNetwork, e.Code)
	assert.Equal(t, NetworkMessage, e.Message)
	assert.ErrorIs(t, e, cause)
	assert.True(t, IsNetwork(e))
}

func TestUnknown(t *testing.T) {
	cause := errors.New("invalid method")

	e := Unknown(cause)

	assert.Equal(t, CodeUnknown, e.Code)
	assert.Equal(t, "invalid method", e.Message)

	e = Unknown(nil)
	assert.Equal(t, "An unknown error occurred", e.Message)
}

func TestWithMessagePreservesOriginal(t *testing.T) {
	orig := FromResponse(409, []byte(`{"code": "409", "message": "Conflict"}`))

	translated := WithMessage(orig, "This person has already been invited")

	assert.Equal(t, "409", translated.Code)
	assert.Equal(t, "This person has already been invited", translated.Message)
	assert.Equal(t, 409, translated.HTTPStatus)

	// The original normalized error stays reachable.
	var inner *Error
	require.ErrorAs(t, translated.Unwrap(), &inner)
	assert.Equal(t, "Conflict", inner.Message)
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	e := FromResponse(401, nil)
	wrapped := fmt.Errorf("fetching bulletins: %w", e)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, 401, got.HTTPStatus)
	assert.True(t, IsUnauthorized(wrapped))
	assert.True(t, IsStatus(wrapped, http.StatusUnauthorized))
}

func TestAsNonAPIError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsUnauthorized(errors.New("plain")))
}
