package application

import (
	"slices"
	"sync"
	"time"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
)

type idSet map[domain.AccountID]struct{}

func newIDSet(ids ...domain.AccountID) idSet {
	set := make(idSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s idSet) has(id domain.AccountID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) add(id domain.AccountID) {
	s[id] = struct{}{}
}

func (s idSet) remove(id domain.AccountID) {
	delete(s, id)
}

func (s idSet) sorted() []domain.AccountID {
	ids := lo.Keys(s)
	slices.Sort(ids)
	return ids
}

// accountState is the mutable record behind an account. Every field is guarded by mu.
type accountState struct {
	mu sync.Mutex

	id          domain.AccountID
	profile     domain.Profile
	credentials domain.Credentials
	lastOnline  time.Time

	friends  idSet
	blocked  idSet
	incoming idSet
	outgoing idSet

	history []domain.HistoryEntry
}

func newAccountState(id domain.AccountID, profile domain.Profile, credentials domain.Credentials) *accountState {
	return &accountState{
		id:          id,
		profile:     profile.Clone(),
		credentials: credentials,
		friends:     newIDSet(),
		blocked:     newIDSet(),
		incoming:    newIDSet(),
		outgoing:    newIDSet(),
	}
}

func accountStateFromRecord(record domain.AccountRecord) *accountState {
	account := record.Account
	return &accountState{
		id:          account.ID,
		profile:     account.Profile.Clone(),
		credentials: account.Credentials,
		lastOnline:  account.LastOnline,
		friends:     newIDSet(account.Friends...),
		blocked:     newIDSet(account.Blocked...),
		incoming:    newIDSet(account.IncomingRequests...),
		outgoing:    newIDSet(account.OutgoingRequests...),
		history:     slices.Clone(record.History),
	}
}

// record appends a history entry and refreshes the last-online time. Caller holds mu.
func (a *accountState) record(at time.Time, action domain.Action, peer domain.AccountID) {
	a.lastOnline = at
	a.history = append(a.history, domain.HistoryEntry{At: at, Action: action, Peer: peer})
}

// view copies the state into a domain value. Caller holds mu.
func (a *accountState) view() domain.Account {
	return domain.Account{
		ID:               a.id,
		Profile:          a.profile.Clone(),
		Credentials:      a.credentials,
		LastOnline:       a.lastOnline,
		Friends:          a.friends.sorted(),
		Blocked:          a.blocked.sorted(),
		IncomingRequests: a.incoming.sorted(),
		OutgoingRequests: a.outgoing.sorted(),
	}
}

func (a *accountState) name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile.Name
}

// lockPair locks both accounts in ascending id order and returns the matching unlock.
// A single account is locked once.
func lockPair(a, b *accountState) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}

	first, second := a, b
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()

	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
