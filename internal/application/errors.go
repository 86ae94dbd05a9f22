package application

import (
	"fmt"

	"github.com/bnema/social-accounts-cli/internal/domain"
)

// NotFoundError reports a reference to an account id the directory does not hold.
type NotFoundError struct {
	ID domain.AccountID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account %s: %s", e.ID, domain.ErrAccountNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return domain.ErrAccountNotFound
}

// InvalidOperationError reports a relationship operation aimed at the acting account itself.
type InvalidOperationError struct {
	Op string
	ID domain.AccountID
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: account %s cannot target itself: %s", e.Op, e.ID, domain.ErrInvalidOperation)
}

func (e *InvalidOperationError) Unwrap() error {
	return domain.ErrInvalidOperation
}
