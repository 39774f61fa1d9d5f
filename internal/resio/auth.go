package resio

import (
	"context"
	"fmt"

	"github.com/resio/resio-cli/internal/api"
	"github.com/resio/resio-cli/internal/endpoint"
)

// Cache is the response cache the facades invalidate on logout.
// *secure.CacheStore satisfies it.
type Cache interface {
	Purge()
}

type nopCache struct{}

func (nopCache) Purge() {}

// AuthAPI groups the account and session operations.
type AuthAPI struct {
	client *api.Client
	cache  Cache
}

// NewAuthAPI returns an AuthAPI. cache may be nil.
func NewAuthAPI(client *api.Client, cache Cache) *AuthAPI {
	if cache == nil {
		cache = nopCache{}
	}
	return &AuthAPI{client: client, cache: cache}
}

// Login authenticates with email and password and persists the issued
// tokens. Login always goes through the v2 endpoint.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateRequired("password", password); err != nil {
		return nil, err
	}

	resp, err := a.client.Post(ctx, a.ep(endpoint.V2, "auth/login"), map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := decode(resp, &result); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if err := a.client.Tokens().SaveToken(result.AccessToken); err != nil {
		return nil, err
	}
	if result.RefreshToken != "" {
		if err := a.client.Tokens().SaveRefreshToken(result.RefreshToken); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// Logout tells the server to revoke the session, then clears local
// state. Local cleanup happens even when the server call fails: the
// device must end up logged out regardless.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := a.client.Post(ctx, a.ep(endpoint.V1, "auth/logout"), nil)

	a.client.Tokens().ClearTokens()
	a.cache.Purge()
	return err
}

// Signup creates a new account.
func (a *AuthAPI) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := validateRequired("firstName", req.FirstName); err != nil {
		return nil, err
	}
	if err := validateRequired("lastName", req.LastName); err != nil {
		return nil, err
	}

	resp, err := a.client.Post(ctx, a.ep(endpoint.V2, "auth/signup"), req)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(resp, &user); err != nil {
		return nil, fmt.Errorf("decoding signup response: %w", err)
	}
	return &user, nil
}

// ForgotPassword requests a password reset email.
func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	_, err := a.client.Post(ctx, a.ep(endpoint.V1, "auth/forgot-password"), map[string]string{"email": email})
	return err
}

// ResetPassword sets a new password using an emailed reset token.
func (a *AuthAPI) ResetPassword(ctx context.Context, token, password string) error {
	if err := validateRequired("token", token); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	_, err := a.client.Post(ctx, a.ep(endpoint.V1, "auth/reset-password"), map[string]string{
		"token":    token,
		"password": password,
	})
	return err
}

// VerifyEmail confirms the address using an emailed verification token.
func (a *AuthAPI) VerifyEmail(ctx context.Context, token string) error {
	if err := validateRequired("token", token); err != nil {
		return err
	}
	_, err := a.client.Post(ctx, a.ep(endpoint.V1, "auth/verify-email"), map[string]string{"token": token})
	return err
}

// ChangePassword replaces the current password.
func (a *AuthAPI) ChangePassword(ctx context.Context, current, next string) error {
	if err := validateRequired("currentPassword", current); err != nil {
		return err
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	_, err := a.client.Post(ctx, a.ep(endpoint.V1, "auth/change-password"), map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	return err
}

// CurrentUser fetches the authenticated user's profile.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := a.client.Get(ctx, a.ep(endpoint.V1, "user/me"))
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(resp, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}

// UpdateUser updates profile fields.
func (a *AuthAPI) UpdateUser(ctx context.Context, req UpdateUserRequest) (*User, error) {
	resp, err := a.client.Put(ctx, a.ep(endpoint.V1, "user/me"), req)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(resp, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}

// DeleteAccount removes the account and clears all local state.
func (a *AuthAPI) DeleteAccount(ctx context.Context) error {
	if _, err := a.client.Delete(ctx, a.ep(endpoint.V1, "user/me")); err != nil {
		return err
	}
	a.client.Tokens().ClearTokens()
	a.cache.Purge()
	return nil
}

func (a *AuthAPI) ep(v endpoint.Version, path string) endpoint.Endpoint {
	return a.client.Resolver().Resio(v, path)
}
