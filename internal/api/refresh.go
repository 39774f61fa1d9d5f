package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resio/resio-cli/internal/apierr"
	"github.com/resio/resio-cli/internal/endpoint"
)

var errNoRefreshToken = errors.New("no refresh token stored")

// expiryWindow is how close to its exp claim a JWT may get before a
// proactive refresh kicks in.
const expiryWindow = 5 * time.Minute

// Refresh forces a token refresh outside the 401 path.
func (c *Client) Refresh(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

// refresh exchanges the stored refresh token for a new access token.
// Concurrent callers share one exchange; every waiter gets the same
// result. The exchange uses the quiet URL so token traffic stays out
// of diagnostics.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		token, err := c.doRefresh(ctx)
		c.hooks.OnRefresh(err == nil)
		return token, err
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	refreshToken := c.tokens.GetRefreshToken()
	if refreshToken == "" {
		return "", errNoRefreshToken
	}

	url, err := c.resolver.Resio(endpoint.V1, "auth/refresh").QuietURL()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apierr.Network(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierr.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apierr.FromResponse(resp.StatusCode, body)
	}

	var parsed struct {
		AccessToken  string `json:"accessToken"`
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	access := parsed.AccessToken
	if access == "" {
		// Older deployments name the field "token".
		access = parsed.Token
	}
	if access == "" {
		return "", errors.New("refresh response missing access token")
	}

	if err := c.tokens.SaveToken(access); err != nil {
		return "", err
	}
	// Rotation: only persist a replacement refresh token when the
	// server issued one.
	if parsed.RefreshToken != "" {
		if err := c.tokens.SaveRefreshToken(parsed.RefreshToken); err != nil {
			return "", err
		}
	}

	c.log.Debug().Msg("access token refreshed")
	return access, nil
}

// tokenNearExpiry reports whether token is a JWT whose exp claim is
// inside the refresh window. Opaque tokens and JWTs without exp report
// false; the server is the authority on those.
func tokenNearExpiry(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now().Add(expiryWindow))
}
