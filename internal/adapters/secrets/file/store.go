package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/bnema/social-accounts-cli/internal/ports"
)

const (
	storeDirMode   = 0o700
	secretFileMode = 0o600
	tempPattern    = ".secret-*.tmp"
)

// Store keeps one secret per file below root, keyed by a relative path such
// as sa/accounts/1/password.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp secret %q: %w", key, err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if err := tempFile.Chmod(secretFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp secret %q: %w", key, err)
	}
	if _, err := tempFile.WriteString(value); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write secret %q: %w", key, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp secret %q: %w", key, err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace secret %q: %w", key, err)
	}
	cleanup = false

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
