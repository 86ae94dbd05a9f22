package application

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Snapshot exports the whole directory. All accounts are locked in ascending
// id order while copying, so the result is consistent with concurrent transitions.
func (d *Directory) Snapshot() domain.Snapshot {
	d.mu.RLock()
	states := lo.Values(d.accounts)
	d.mu.RUnlock()

	slices.SortFunc(states, func(a, b *accountState) int {
		return cmp.Compare(a.id, b.id)
	})

	for _, state := range states {
		state.mu.Lock()
	}
	defer func() {
		for i := len(states) - 1; i >= 0; i-- {
			states[i].mu.Unlock()
		}
	}()

	snapshot := domain.Snapshot{
		NextID:   domain.AccountID(d.lastID.Load() + 1),
		Accounts: make([]domain.AccountRecord, 0, len(states)),
	}
	for _, state := range states {
		snapshot.Accounts = append(snapshot.Accounts, domain.AccountRecord{
			Account: state.view(),
			History: slices.Clone(state.history),
		})
	}

	return snapshot
}

// Restore replaces the directory content with snapshot after checking the
// relationship invariants. On error the directory is left untouched.
func (d *Directory) Restore(snapshot domain.Snapshot) error {
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	accounts := make(map[domain.AccountID]*accountState, len(snapshot.Accounts))
	var lastID domain.AccountID
	if snapshot.NextID > 0 {
		lastID = snapshot.NextID - 1
	}
	for _, record := range snapshot.Accounts {
		accounts[record.Account.ID] = accountStateFromRecord(record)
		lastID = max(lastID, record.Account.ID)
	}

	d.mu.Lock()
	d.accounts = accounts
	d.lastID.Store(uint64(lastID))
	d.mu.Unlock()

	d.logger.WithFields(logrus.Fields{
		"function": "Restore",
		"accounts": len(accounts),
		"last_id":  lastID,
	}).Debug("Directory restored")

	return nil
}

func validateSnapshot(snapshot domain.Snapshot) error {
	byID := make(map[domain.AccountID]domain.Account, len(snapshot.Accounts))
	for _, record := range snapshot.Accounts {
		id := record.Account.ID
		if id == 0 {
			return fmt.Errorf("%w: account id 0", domain.ErrCorruptedSnapshot)
		}
		if _, ok := byID[id]; ok {
			return fmt.Errorf("%w: duplicate account %s", domain.ErrCorruptedSnapshot, id)
		}
		for _, entry := range record.History {
			if !entry.Action.Valid() {
				return fmt.Errorf("%w: account %s has unknown history action %q", domain.ErrCorruptedSnapshot, id, entry.Action)
			}
		}
		byID[id] = record.Account
	}

	for id, account := range byID {
		sets := map[string][]domain.AccountID{
			"friends":           account.Friends,
			"blocked":           account.Blocked,
			"incoming requests": account.IncomingRequests,
			"outgoing requests": account.OutgoingRequests,
		}
		for name, ids := range sets {
			for _, other := range ids {
				if other == id {
					return fmt.Errorf("%w: account %s lists itself in %s", domain.ErrCorruptedSnapshot, id, name)
				}
				if _, ok := byID[other]; !ok {
					return fmt.Errorf("%w: account %s references unknown account %s in %s", domain.ErrCorruptedSnapshot, id, other, name)
				}
			}
		}

		for _, friend := range account.Friends {
			if !slices.Contains(byID[friend].Friends, id) {
				return fmt.Errorf("%w: friendship %s-%s is not symmetric", domain.ErrCorruptedSnapshot, id, friend)
			}
		}
		for _, sender := range account.IncomingRequests {
			if !slices.Contains(byID[sender].OutgoingRequests, id) {
				return fmt.Errorf("%w: request %s->%s has no outgoing side", domain.ErrCorruptedSnapshot, sender, id)
			}
		}
		for _, recipient := range account.OutgoingRequests {
			if !slices.Contains(byID[recipient].IncomingRequests, id) {
				return fmt.Errorf("%w: request %s->%s has no incoming side", domain.ErrCorruptedSnapshot, id, recipient)
			}
		}
		for _, blocked := range account.Blocked {
			if slices.Contains(account.Friends, blocked) ||
				slices.Contains(account.IncomingRequests, blocked) ||
				slices.Contains(account.OutgoingRequests, blocked) {
				return fmt.Errorf("%w: account %s still relates to blocked account %s", domain.ErrCorruptedSnapshot, id, blocked)
			}
		}
	}

	return nil
}
