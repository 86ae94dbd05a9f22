package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/bnema/social-accounts-cli/internal/ports"
)

// Store keeps secrets in process memory.
type Store struct {
	mu      sync.RWMutex
	secrets map[string]string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{secrets: map[string]string{}}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("secret key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets[key] = value
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.secrets[key]
	if !ok {
		return "", fmt.Errorf("memory secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.secrets, key)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.secrets)
}
