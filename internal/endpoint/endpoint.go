// Package endpoint resolves API paths into full URLs across backend
// families and API versions.
package endpoint

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Version selects an API version segment.
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
	V3 Version = "v3"
	V4 Version = "v4"
)

// Kind identifies a backend family.
type Kind string

const (
	// KindResio is the resident-portal API.
	KindResio Kind = "resio"
	// KindCardConnect is the payment gateway.
	KindCardConnect Kind = "cardConnect"
)

// Resolver builds endpoints from configured base URLs. A Resolver is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	resioBase       string
	cardConnectBase string
	dev             bool
	log             zerolog.Logger
}

// NewResolver constructs a Resolver. Trailing slashes on base URLs are
// ignored. Endpoint URL logging only happens when dev is true.
func NewResolver(resioBase, cardConnectBase string, dev bool, log zerolog.Logger) *Resolver {
	return &Resolver{
		resioBase:       strings.TrimSuffix(resioBase, "/"),
		cardConnectBase: strings.TrimSuffix(cardConnectBase, "/"),
		dev:             dev,
		log:             log,
	}
}

// Endpoint is a resolved path within a backend family and version.
type Endpoint struct {
	r       *Resolver
	kind    Kind
	version Version
	path    string
}

// Resolve returns an endpoint for the given kind, version, and path.
// The path should not have a leading slash.
func (r *Resolver) Resolve(kind Kind, version Version, path string) Endpoint {
	return Endpoint{r: r, kind: kind, version: version, path: strings.TrimPrefix(path, "/")}
}

// Resio returns a resident-portal endpoint at the given version.
func (r *Resolver) Resio(version Version, path string) Endpoint {
	return r.Resolve(KindResio, version, path)
}

// CardConnect returns a payment-gateway endpoint. CardConnect paths are
// not versioned.
func (r *Resolver) CardConnect(path string) Endpoint {
	return r.Resolve(KindCardConnect, "", path)
}

// BaseURL returns the versioned base URL for the endpoint's backend
// family. Unknown kinds fail rather than falling back to a default
// backend, so a miswired call site surfaces immediately.
func (e Endpoint) BaseURL() (string, error) {
	switch e.kind {
	case KindResio:
		return fmt.Sprintf("%s/api/%s", e.r.resioBase, e.version), nil
	case KindCardConnect:
		return e.r.cardConnectBase, nil
	default:
		return "", fmt.Errorf("unknown endpoint kind %q", e.kind)
	}
}

// URL resolves the full URL, logging it in development environments.
func (e Endpoint) URL() (string, error) {
	u, err := e.QuietURL()
	if err != nil {
		return "", err
	}
	if e.r.dev {
		e.r.log.Debug().Str("url", u).Msg("resolved endpoint")
	}
	return u, nil
}

// QuietURL resolves the full URL without logging. Used for requests
// whose URLs should stay out of diagnostics, such as token refresh.
func (e Endpoint) QuietURL() (string, error) {
	base, err := e.BaseURL()
	if err != nil {
		return "", err
	}
	if e.path == "" {
		return base, nil
	}
	return base + "/" + e.path, nil
}
