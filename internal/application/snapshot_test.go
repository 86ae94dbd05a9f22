package application

import (
	"testing"
	"time"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	dir, _ := newTestDirectory(t)
	ids := createNamed(t, dir, "Alice", "Bob", "Carol")
	befriend(t, dir, ids[0], ids[1])
	_, err := dir.SendFriendRequest(ids[2], ids[0])
	require.NoError(t, err)
	_, err = dir.BlockUser(ids[1], ids[2])
	require.NoError(t, err)

	snapshot := dir.Snapshot()
	assert.Equal(t, domain.AccountID(4), snapshot.NextID)
	require.Len(t, snapshot.Accounts, 3)

	restored, _ := newTestDirectory(t)
	require.NoError(t, restored.Restore(snapshot))
	assert.Equal(t, snapshot, restored.Snapshot())

	next := restored.Create(NewAccount{Name: "Dave"})
	assert.Equal(t, domain.AccountID(4), next)
}

func TestRestoreKeepsIDSequencePastHighestAccount(t *testing.T) {
	dir, _ := newTestDirectory(t)
	require.NoError(t, dir.Restore(domain.Snapshot{
		Accounts: []domain.AccountRecord{{Account: domain.Account{ID: 9, Profile: domain.Profile{Name: "Zed"}}}},
	}))

	assert.Equal(t, domain.AccountID(10), dir.Create(NewAccount{Name: "Next"}))
}

func TestRestoreRejectsCorruptedSnapshots(t *testing.T) {
	account := func(id domain.AccountID, mutate func(*domain.Account)) domain.AccountRecord {
		a := domain.Account{ID: id, Profile: domain.Profile{Name: id.String()}}
		if mutate != nil {
			mutate(&a)
		}
		return domain.AccountRecord{Account: a}
	}

	tests := []struct {
		name     string
		accounts []domain.AccountRecord
		wantErr  string
	}{
		{
			name:     "zero id",
			accounts: []domain.AccountRecord{account(0, nil)},
			wantErr:  "account id 0",
		},
		{
			name:     "duplicate id",
			accounts: []domain.AccountRecord{account(1, nil), account(1, nil)},
			wantErr:  "duplicate account 1",
		},
		{
			name: "self friendship",
			accounts: []domain.AccountRecord{account(1, func(a *domain.Account) {
				a.Friends = []domain.AccountID{1}
			})},
			wantErr: "lists itself",
		},
		{
			name: "unknown reference",
			accounts: []domain.AccountRecord{account(1, func(a *domain.Account) {
				a.Blocked = []domain.AccountID{5}
			})},
			wantErr: "unknown account 5",
		},
		{
			name: "one-sided friendship",
			accounts: []domain.AccountRecord{
				account(1, func(a *domain.Account) { a.Friends = []domain.AccountID{2} }),
				account(2, nil),
			},
			wantErr: "not symmetric",
		},
		{
			name: "dangling incoming request",
			accounts: []domain.AccountRecord{
				account(1, func(a *domain.Account) { a.IncomingRequests = []domain.AccountID{2} }),
				account(2, nil),
			},
			wantErr: "no outgoing side",
		},
		{
			name: "dangling outgoing request",
			accounts: []domain.AccountRecord{
				account(1, func(a *domain.Account) { a.OutgoingRequests = []domain.AccountID{2} }),
				account(2, nil),
			},
			wantErr: "no incoming side",
		},
		{
			name: "friend still blocked",
			accounts: []domain.AccountRecord{
				account(1, func(a *domain.Account) {
					a.Friends = []domain.AccountID{2}
					a.Blocked = []domain.AccountID{2}
				}),
				account(2, func(a *domain.Account) { a.Friends = []domain.AccountID{1} }),
			},
			wantErr: "blocked account 2",
		},
		{
			name: "unknown history action",
			accounts: []domain.AccountRecord{{
				Account: domain.Account{ID: 1},
				History: []domain.HistoryEntry{{At: time.Now(), Action: "Hack the planet"}},
			}},
			wantErr: "unknown history action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, _ := newTestDirectory(t)
			existing := dir.Create(NewAccount{Name: "Keep"})

			err := dir.Restore(domain.Snapshot{NextID: 10, Accounts: tt.accounts})
			require.ErrorIs(t, err, domain.ErrCorruptedSnapshot)
			assert.ErrorContains(t, err, tt.wantErr)

			kept, err := dir.Resolve(existing)
			require.NoError(t, err)
			assert.Equal(t, "Keep", kept.Profile.Name)
		})
	}
}

func TestSnapshotIsDetachedFromDirectory(t *testing.T) {
	dir, _ := newTestDirectory(t)
	id := dir.Create(NewAccount{Name: "Alice", Birthday: lo.ToPtr(time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC))})

	snapshot := dir.Snapshot()
	snapshot.Accounts[0].History[0].Action = domain.ActionBlock
	*snapshot.Accounts[0].Account.Profile.Birthday = time.Time{}

	history, err := dir.History(id)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreate, history[0].Action)

	account, err := dir.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, 2001, account.Profile.Birthday.Year())
}
