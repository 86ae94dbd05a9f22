package application

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/bnema/social-accounts-cli/internal/ports"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Directory is the in-memory registry of accounts and the relationship
// operations between them. It is safe for concurrent use: operations that
// touch two accounts lock both in ascending id order.
type Directory struct {
	clock  ports.Clock
	logger logrus.FieldLogger

	lastID atomic.Uint64

	mu       sync.RWMutex
	accounts map[domain.AccountID]*accountState
}

func NewDirectory(clock ports.Clock, logger logrus.FieldLogger) *Directory {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Directory{
		clock:    clock,
		logger:   logger,
		accounts: map[domain.AccountID]*accountState{},
	}
}

// Create registers a new account and returns its id. Initial friends that do
// not resolve to another account are skipped.
func (d *Directory) Create(cmd NewAccount) domain.AccountID {
	id := domain.AccountID(d.lastID.Add(1))
	account := newAccountState(id, cmd.profile(), cmd.credentials())
	account.record(d.clock.Now(), domain.ActionCreate, 0)

	d.mu.Lock()
	d.accounts[id] = account
	d.mu.Unlock()

	for _, friendID := range lo.Uniq(cmd.Friends) {
		d.linkInitialFriend(account, friendID)
	}

	d.logger.WithFields(logrus.Fields{
		"function": "Create",
		"account":  id,
		"name":     cmd.Name,
	}).Info("Account created")

	return id
}

func (d *Directory) linkInitialFriend(account *accountState, friendID domain.AccountID) {
	logger := d.logger.WithFields(logrus.Fields{
		"function": "Create",
		"account":  account.id,
		"friend":   friendID,
	})

	if friendID == account.id {
		logger.Warn("Skipping self as initial friend")
		return
	}
	friend, err := d.lookup(friendID)
	if err != nil {
		logger.Warn("Skipping unknown initial friend")
		return
	}

	unlock := lockPair(account, friend)
	defer unlock()
	account.friends.add(friend.id)
	friend.friends.add(account.id)
}

// Resolve returns a copy of the account. It does not count as account activity.
func (d *Directory) Resolve(id domain.AccountID) (domain.Account, error) {
	account, err := d.lookup(id)
	if err != nil {
		return domain.Account{}, err
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	return account.view(), nil
}

// History returns the chronological activity log of the account.
func (d *Directory) History(id domain.AccountID) ([]domain.HistoryEntry, error) {
	account, err := d.lookup(id)
	if err != nil {
		return nil, err
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	return slices.Clone(account.history), nil
}

func (d *Directory) Summary(id domain.AccountID) (Summary, error) {
	account, err := d.lookup(id)
	if err != nil {
		return Summary{}, err
	}

	account.mu.Lock()
	summary := Summary{Account: account.view(), History: slices.Clone(account.history)}
	account.mu.Unlock()

	related := lo.Uniq(slices.Concat(
		summary.Account.Friends,
		summary.Account.Blocked,
		summary.Account.IncomingRequests,
		summary.Account.OutgoingRequests,
		lo.FilterMap(summary.History, func(entry domain.HistoryEntry, _ int) (domain.AccountID, bool) {
			return entry.Peer, entry.Peer != 0
		}),
	))
	summary.Names = make(map[domain.AccountID]string, len(related))
	for _, id := range related {
		if peer, err := d.lookup(id); err == nil {
			summary.Names[id] = peer.name()
		}
	}

	return summary, nil
}

// List returns every account ordered by id.
func (d *Directory) List() []domain.Account {
	d.mu.RLock()
	states := lo.Values(d.accounts)
	d.mu.RUnlock()

	slices.SortFunc(states, func(a, b *accountState) int {
		return cmp.Compare(a.id, b.id)
	})

	accounts := make([]domain.Account, 0, len(states))
	for _, state := range states {
		state.mu.Lock()
		accounts = append(accounts, state.view())
		state.mu.Unlock()
	}
	return accounts
}

// Account binds the directory to an acting account.
func (d *Directory) Account(id domain.AccountID) (*AccountHandle, error) {
	if _, err := d.lookup(id); err != nil {
		return nil, err
	}
	return &AccountHandle{dir: d, id: id}, nil
}

func (d *Directory) lookup(id domain.AccountID) (*accountState, error) {
	d.mu.RLock()
	account, ok := d.accounts[id]
	d.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return account, nil
}
