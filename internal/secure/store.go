// Package secure persists authentication tokens. The OS keyring is the
// primary backend; when it is unavailable a locked, permission-restricted
// file under the user config directory serves as fallback.
package secure

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"
)

// Keyring service names. Access and refresh tokens live under separate
// services so clearing one cannot disturb the other.
const (
	serviceAPI     = "resio-api"
	serviceRefresh = "resio-refresh"

	keyAccessToken  = "access-token"
	keyRefreshToken = "refresh-token"
)

// StorageError reports that a token could not be persisted by any backend.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("secure storage: %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Store holds tokens in the OS keyring, falling back to a file backend
// when the keyring is unavailable. Backend selection is probed once,
// lazily, on first use.
type Store struct {
	log  zerolog.Logger
	file *fileBackend

	probeOnce  sync.Once
	useKeyring bool
}

// NewStore returns a Store whose fallback file lives under dir.
func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{
		log:  log,
		file: newFileBackend(dir),
	}
}

// probe checks keyring availability once. RESIO_NO_KEYRING forces the
// file backend, which keeps tests and headless environments hermetic.
func (s *Store) probe() {
	s.probeOnce.Do(func() {
		if os.Getenv("RESIO_NO_KEYRING") != "" {
			s.useKeyring = false
			return
		}
		probe := "resio-probe"
		if err := keyring.Set(serviceAPI, probe, "ok"); err != nil {
			s.log.Debug().Err(err).Msg("keyring unavailable, using file backend")
			s.useKeyring = false
			return
		}
		_ = keyring.Delete(serviceAPI, probe)
		s.useKeyring = true
	})
}

// SaveToken stores the access token. Returns a StorageError only when
// every backend fails.
func (s *Store) SaveToken(token string) error {
	return s.save("save access token", serviceAPI, keyAccessToken, token)
}

// SaveRefreshToken stores the refresh token.
func (s *Store) SaveRefreshToken(token string) error {
	return s.save("save refresh token", serviceRefresh, keyRefreshToken, token)
}

func (s *Store) save(op, service, key, token string) error {
	if token == "" {
		return &StorageError{Op: op, Cause: errors.New("empty token")}
	}
	s.probe()
	if s.useKeyring {
		err := keyring.Set(service, key, token)
		if err == nil {
			return nil
		}
		s.log.Debug().Err(err).Str("service", service).Msg("keyring write failed, trying file backend")
	}
	if err := s.file.set(service, key, token); err != nil {
		return &StorageError{Op: op, Cause: err}
	}
	return nil
}

// GetToken returns the access token, or "" when absent or unreadable.
// Reads never error; an unreadable store behaves like a logged-out one.
func (s *Store) GetToken() string {
	return s.get(serviceAPI, keyAccessToken)
}

// GetRefreshToken returns the refresh token, or "" when absent.
func (s *Store) GetRefreshToken() string {
	return s.get(serviceRefresh, keyRefreshToken)
}

func (s *Store) get(service, key string) string {
	s.probe()
	if s.useKeyring {
		v, err := keyring.Get(service, key)
		if err == nil {
			return v
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			s.log.Debug().Err(err).Str("service", service).Msg("keyring read failed")
		}
		// Fall through: the token may have been written to the file
		// backend before the keyring became available.
	}
	v, err := s.file.get(service, key)
	if err != nil {
		return ""
	}
	return v
}

// ClearTokens removes both tokens from every backend. It never fails:
// a partial clear still leaves the client logged out.
func (s *Store) ClearTokens() {
	s.probe()
	if s.useKeyring {
		_ = keyring.Delete(serviceAPI, keyAccessToken)
		_ = keyring.Delete(serviceRefresh, keyRefreshToken)
	}
	if err := s.file.clear(); err != nil {
		s.log.Debug().Err(err).Msg("file backend clear failed")
	}
}
