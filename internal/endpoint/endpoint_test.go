package endpoint

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *Resolver {
	return NewResolver("https://api.portal.resio.com", "https://fts-uat.cardconnect.com", false, zerolog.Nop())
}

func TestResioURL(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name    string
		version Version
		path    string
		want    string
	}{
		{
			name:    "v1 path",
			version: V1,
			path:    "home/events",
			want:    "https://api.portal.resio.com/api/v1/home/events",
		},
		{
			name:    "v2 path",
			version: V2,
			path:    "auth/login",
			want:    "https://api.portal.resio.com/api/v2/auth/login",
		},
		{
			name:    "v4 path",
			version: V4,
			path:    "home/bulletins/unread-count",
			want:    "https://api.portal.resio.com/api/v4/home/bulletins/unread-count",
		},
		{
			name:    "leading slash stripped",
			version: V1,
			path:    "/user/me",
			want:    "https://api.portal.resio.com/api/v1/user/me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resio(tt.version, tt.path).URL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newTestResolver()
	e := r.Resio(V3, "home/leases")

	first, err := e.URL()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := e.URL()
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestCardConnectURL(t *testing.T) {
	r := newTestResolver()

	got, err := r.CardConnect("cardconnect/rest/sig").URL()
	require.NoError(t, err)
	assert.Equal(t, "https://fts-uat.cardconnect.com/cardconnect/rest/sig", got)
}

func TestUnknownKindFails(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve(Kind("plaid"), V1, "anything").URL()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown endpoint kind")

	_, err = r.Resolve(Kind("plaid"), V1, "anything").BaseURL()
	assert.Error(t, err)
}

func TestTrailingSlashTrimmed(t *testing.T) {
	r := NewResolver("https://api.portal.resio.com/", "https://fts-uat.cardconnect.com/", false, zerolog.Nop())

	got, err := r.Resio(V1, "user/me").QuietURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.portal.resio.com/api/v1/user/me", got)
}

func TestQuietURLMatchesURL(t *testing.T) {
	r := newTestResolver()
	e := r.Resio(V1, "auth/refresh")

	loud, err := e.URL()
	require.NoError(t, err)
	quiet, err := e.QuietURL()
	require.NoError(t, err)
	assert.Equal(t, loud, quiet)
}
