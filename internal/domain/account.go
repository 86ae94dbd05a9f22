package domain

import (
	"strconv"
	"time"
)

type AccountID uint64

func (id AccountID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func ParseAccountID(raw string) (AccountID, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, ErrInvalidAccountID
	}
	return AccountID(n), nil
}

type Profile struct {
	Name           string
	Status         string
	Birthday       *time.Time
	GraduationYear *int
}

// Credentials are kept opaque; nothing in the module validates them.
type Credentials struct {
	Login    string
	Password string `json:"-"`
}

// Account is a point-in-time copy of an account and its relationship sets.
// The id slices are sorted ascending.
type Account struct {
	ID               AccountID
	Profile          Profile
	Credentials      Credentials
	LastOnline       time.Time
	Friends          []AccountID
	Blocked          []AccountID
	IncomingRequests []AccountID
	OutgoingRequests []AccountID
}

// IsGraduate returns nil when no graduation year is set.
func (p Profile) IsGraduate(now time.Time) *bool {
	if p.GraduationYear == nil {
		return nil
	}
	graduate := now.Year()-*p.GraduationYear > 0
	return &graduate
}

// Clone returns a copy that shares no pointers with p.
func (p Profile) Clone() Profile {
	clone := p
	if p.Birthday != nil {
		birthday := *p.Birthday
		clone.Birthday = &birthday
	}
	if p.GraduationYear != nil {
		year := *p.GraduationYear
		clone.GraduationYear = &year
	}
	return clone
}
