package secure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// fileBackend stores credentials in a 0600 JSON file guarded by an
// advisory lock. It is the fallback when no OS keyring is reachable.
type fileBackend struct {
	dir string
}

func newFileBackend(dir string) *fileBackend {
	return &fileBackend{dir: dir}
}

func (f *fileBackend) path() string {
	return filepath.Join(f.dir, "credentials.json")
}

func (f *fileBackend) lockPath() string {
	return f.path() + ".lock"
}

// withLock runs fn while holding the credentials lock. Lock acquisition
// fails open after 100ms so a stale lock cannot wedge the client.
func (f *fileBackend) withLock(fn func() error) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	lock := flock.New(f.lockPath())
	locked, err := lock.TryLockContext(ctx, 20*time.Millisecond)
	if err == nil && locked {
		defer func() { _ = lock.Unlock() }()
	}
	return fn()
}

func (f *fileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	creds := map[string]string{}
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt credentials file reads as empty; the next write
		// replaces it wholesale.
		return map[string]string{}, nil
	}
	return creds, nil
}

// write replaces the credentials file atomically via temp file + rename.
func (f *fileBackend) write(creds map[string]string) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".credentials-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path())
}

func credKey(service, key string) string {
	return fmt.Sprintf("%s/%s", service, key)
}

func (f *fileBackend) set(service, key, value string) error {
	return f.withLock(func() error {
		creds, err := f.read()
		if err != nil {
			return err
		}
		creds[credKey(service, key)] = value
		return f.write(creds)
	})
}

func (f *fileBackend) get(service, key string) (string, error) {
	var value string
	err := f.withLock(func() error {
		creds, err := f.read()
		if err != nil {
			return err
		}
		value = creds[credKey(service, key)]
		return nil
	})
	return value, err
}

func (f *fileBackend) clear() error {
	return f.withLock(func() error {
		err := os.Remove(f.path())
		if os.IsNotExist(err) {
			return nil
		}
		return err
	})
}
