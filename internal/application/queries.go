package application

import "github.com/bnema/social-accounts-cli/internal/domain"

// Result describes one relationship transition as seen by the acting account.
type Result struct {
	Outcome domain.Outcome
	Actor   domain.AccountID
	Peer    domain.AccountID
	Message string
}

// Summary is an account together with its activity log and the names of
// every account it refers to.
type Summary struct {
	Account domain.Account
	History []domain.HistoryEntry
	Names   map[domain.AccountID]string
}
