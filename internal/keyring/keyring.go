// Package keyring stores the GitHub API token used for release probes
// in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name for wslforge secrets.
	Service = "wslforge"

	// TestKeyringEnvVar, when set to a directory path, switches to a
	// file-based keyring. Testing only.
	TestKeyringEnvVar = "WSLFORGE_TEST_KEYRING_DIR"
)

var (
	// ErrKeyringUnavailable is returned when no secure keyring is available.
	ErrKeyringUnavailable = errors.New("secure keyring is not available on this system")
	// ErrSecretNotFound is returned when a secret is not in the keyring.
	ErrSecretNotFound = errors.New("secret not found in keyring")
)

// Store represents a secure secret storage backend.
type Store interface {
	// Set stores a secret under the given key.
	Set(key, secret string) error
	// Get retrieves the secret stored under the given key.
	Get(key string) (string, error)
	// Delete removes the secret stored under the given key.
	Delete(key string) error
	// IsAvailable checks if the keyring is usable.
	IsAvailable() error
}

// DefaultStore returns the keyring store for the current platform. If
// WSLFORGE_TEST_KEYRING_DIR is set, a file-based store is used so tests
// never touch the OS keyring.
func DefaultStore() Store {
	if testDir := os.Getenv(TestKeyringEnvVar); testDir != "" {
		fileStore, err := NewFileStore(testDir)
		if err == nil {
			return fileStore
		}
	}
	return &osKeyring{}
}

// osKeyring implements Store using the OS keyring.
type osKeyring struct{}

// IsAvailable probes the keyring with a read of a key that is expected
// to be missing. ErrNotFound means the keyring itself works.
func (k *osKeyring) IsAvailable() error {
	_, err := gokeyring.Get(Service, "__availability_check__")
	if err == nil || errors.Is(err, gokeyring.ErrNotFound) {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	switch runtime.GOOS {
	case "linux":
		if strings.Contains(errStr, "secret service") || strings.Contains(errStr, "dbus") {
			return fmt.Errorf("%w: D-Bus secret service not available - install and start gnome-keyring or another provider", ErrKeyringUnavailable)
		}
	case "windows":
		if strings.Contains(errStr, "credential") || strings.Contains(errStr, "wincred") {
			return fmt.Errorf("%w: Windows Credential Manager not accessible", ErrKeyringUnavailable)
		}
	}

	// Anything else: let the real operation produce the better message.
	return nil
}

func (k *osKeyring) Set(key, secret string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := gokeyring.Set(Service, key, secret); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}
	return nil
}

func (k *osKeyring) Get(key string) (string, error) {
	secret, err := gokeyring.Get(Service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrSecretNotFound
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return secret, nil
}

func (k *osKeyring) Delete(key string) error {
	err := gokeyring.Delete(Service, key)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("failed to delete secret: %w", err)
	}
	return nil
}
