package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/social-accounts-cli/internal/adapters/secrets/memory"
	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/bnema/social-accounts-cli/internal/ports/mocks"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, statePath string) (*SnapshotStore, *memory.Store) {
	t.Helper()

	config := viper.New()
	config.Set("state.path", statePath)
	secrets := memory.NewStore()

	store, err := NewSnapshotStore(config, secrets)
	require.NoError(t, err)
	return store, secrets
}

func sampleSnapshot() domain.Snapshot {
	at := time.Date(2026, 10, 16, 9, 30, 15, 250, time.UTC)
	birthday := time.Date(2001, 4, 2, 0, 0, 0, 0, time.UTC)

	return domain.Snapshot{
		NextID: 4,
		Accounts: []domain.AccountRecord{
			{
				Account: domain.Account{
					ID: 1,
					Profile: domain.Profile{
						Name:           "Alice",
						Status:         "studying",
						Birthday:       &birthday,
						GraduationYear: lo.ToPtr(2023),
					},
					Credentials:      domain.Credentials{Login: "alice", Password: "wonderland"},
					LastOnline:       at,
					Friends:          []domain.AccountID{2},
					Blocked:          []domain.AccountID{3},
					IncomingRequests: []domain.AccountID{},
					OutgoingRequests: []domain.AccountID{},
				},
				History: []domain.HistoryEntry{
					{At: at.Add(-time.Minute), Action: domain.ActionCreate},
					{At: at, Action: domain.ActionBlock, Peer: 3},
				},
			},
			{
				Account: domain.Account{
					ID:               2,
					Profile:          domain.Profile{Name: "Bob"},
					Credentials:      domain.Credentials{Login: "bob"},
					LastOnline:       at,
					Friends:          []domain.AccountID{1},
					Blocked:          []domain.AccountID{},
					IncomingRequests: []domain.AccountID{},
					OutgoingRequests: []domain.AccountID{},
				},
				History: []domain.HistoryEntry{{At: at, Action: domain.ActionCreate}},
			},
			{
				Account: domain.Account{
					ID:               3,
					Profile:          domain.Profile{Name: "Carol"},
					Credentials:      domain.Credentials{Login: "carol", Password: "pw"},
					Friends:          []domain.AccountID{},
					Blocked:          []domain.AccountID{},
					IncomingRequests: []domain.AccountID{},
					OutgoingRequests: []domain.AccountID{},
				},
				History: []domain.HistoryEntry{},
			},
		},
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, secrets := newTestStore(t, filepath.Join(t.TempDir(), "state.toml"))
	want := sampleSnapshot()

	require.NoError(t, store.Save(context.Background(), want))
	assert.Equal(t, 2, secrets.Len())

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSnapshotStoreKeepsPasswordsOutOfStateFile(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	store, secrets := newTestStore(t, statePath)

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "wonderland")
	assert.Contains(t, string(data), "sa/accounts/1/password")
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "next_id = 4")

	password, err := secrets.Get(context.Background(), "sa/accounts/1/password")
	require.NoError(t, err)
	assert.Equal(t, "wonderland", password)
}

func TestSnapshotStoreLoadMissingSecretReturnsError(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	store, _ := newTestStore(t, statePath)
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	fresh, _ := newTestStore(t, statePath)
	_, err := fresh.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "load password for account 1")
}

func TestSnapshotStoreMissingFileLoadsEmptySnapshot(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, filepath.Join(t.TempDir(), "missing", "state.toml"))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID(1), snapshot.NextID)
	assert.Empty(t, snapshot.Accounts)
}

func TestSnapshotStoreSaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	store, err := NewSnapshotStore(viper.New(), memory.NewStore())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.Snapshot{NextID: 1}))

	statePath := filepath.Join(homeDir, ".sa", "state.toml")
	assert.Equal(t, statePath, store.Path())
	info, err := os.Stat(statePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewSnapshotStoreRequiresSecretStore(t *testing.T) {
	t.Parallel()

	_, err := NewSnapshotStore(viper.New(), nil)
	assert.ErrorContains(t, err, "secret store is nil")
}

func TestSnapshotStoreDecodeErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed toml",
			content: "accounts = [",
			wantErr: "decode state file",
		},
		{
			name:    "future version",
			content: "version = 999\nnext_id = 1\n",
			wantErr: "unsupported state schema version",
		},
		{
			name: "bad birthday",
			content: strings.Join([]string{
				"version = 1",
				"next_id = 2",
				"",
				"[[accounts]]",
				"id = 1",
				"login = \"alice\"",
				"",
				"[accounts.profile]",
				"name = \"Alice\"",
				"birthday = \"02/04/2001\"",
				"",
			}, "\n"),
			wantErr: "account 1 birthday",
		},
		{
			name: "bad history time",
			content: strings.Join([]string{
				"version = 1",
				"next_id = 2",
				"",
				"[[accounts]]",
				"id = 1",
				"login = \"alice\"",
				"",
				"[accounts.profile]",
				"name = \"Alice\"",
				"",
				"[[accounts.history]]",
				"at = \"yesterday\"",
				"action = \"Create an account\"",
				"",
			}, "\n"),
			wantErr: "account 1 history",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			statePath := filepath.Join(t.TempDir(), "state.toml")
			require.NoError(t, os.WriteFile(statePath, []byte(tc.content), 0o600))
			store, _ := newTestStore(t, statePath)

			_, err := store.Load(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSnapshotStoreLoadsHandWrittenState(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte(strings.Join([]string{
		"version = 1",
		"next_id = 3",
		"",
		"[[accounts]]",
		"id = 1",
		"login = \"alice\"",
		"last_online = \"2026-10-16T09:00:00Z\"",
		"",
		"[accounts.profile]",
		"name = \"Alice\"",
		"",
		"[accounts.relations]",
		"friends = [2]",
		"",
		"[[accounts]]",
		"id = 2",
		"login = \"bob\"",
		"",
		"[accounts.profile]",
		"name = \"Bob\"",
		"",
		"[accounts.relations]",
		"friends = [1]",
		"",
	}, "\n")), 0o600))

	store, _ := newTestStore(t, statePath)
	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Accounts, 2)
	alice := snapshot.Accounts[0].Account
	assert.Equal(t, "Alice", alice.Profile.Name)
	assert.Equal(t, []domain.AccountID{2}, alice.Friends)
	assert.Equal(t, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), alice.LastOnline)
	assert.Empty(t, alice.Credentials.Password)
	assert.True(t, snapshot.Accounts[1].Account.LastOnline.IsZero())
}

func TestSnapshotStoreSaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, filepath.Join(t.TempDir(), "state.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, sampleSnapshot()), context.Canceled)
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotStoreConcurrentSavesAcrossInstances(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	storeA, _ := newTestStore(t, statePath)
	storeB, _ := newTestStore(t, statePath)

	const writes = 50
	start := make(chan struct{})
	errCh := make(chan error, writes*2)
	var wg sync.WaitGroup
	wg.Add(2)

	for _, store := range []*SnapshotStore{storeA, storeB} {
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < writes; i++ {
				errCh <- store.Save(context.Background(), domain.Snapshot{NextID: domain.AccountID(i + 1)})
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	snapshot, err := storeA.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID(writes), snapshot.NextID)
}

func TestSnapshotStoreSecretStoreFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		setup   func(secrets *mocks.MockSecretStore)
		wantErr string
	}{
		{
			name: "put fails",
			setup: func(secrets *mocks.MockSecretStore) {
				secrets.EXPECT().Put(mock.Anything, "sa/accounts/1/password", "wonderland").Return(errors.New("disk full")).Once()
			},
			wantErr: "store password for account 1: disk full",
		},
		{
			name: "delete fails",
			setup: func(secrets *mocks.MockSecretStore) {
				secrets.EXPECT().Put(mock.Anything, "sa/accounts/1/password", "wonderland").Return(nil).Once()
				secrets.EXPECT().Delete(mock.Anything, "sa/accounts/2/password").Return(errors.New("read-only")).Once()
			},
			wantErr: "clear password for account 2: read-only",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			statePath := filepath.Join(t.TempDir(), "state.toml")
			config := viper.New()
			config.Set("state.path", statePath)
			secrets := mocks.NewMockSecretStore(t)
			tc.setup(secrets)

			store, err := NewSnapshotStore(config, secrets)
			require.NoError(t, err)

			err = store.Save(context.Background(), sampleSnapshot())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)

			_, statErr := os.Stat(statePath)
			assert.True(t, errors.Is(statErr, os.ErrNotExist))
		})
	}
}

func TestSnapshotStoreSaveClearsPasswordOfAccountsWithoutOne(t *testing.T) {
	t.Parallel()

	store, secrets := newTestStore(t, filepath.Join(t.TempDir(), "state.toml"))
	require.NoError(t, secrets.Put(context.Background(), "sa/accounts/2/password", "stale"))

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	_, err := secrets.Get(context.Background(), "sa/accounts/2/password")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
