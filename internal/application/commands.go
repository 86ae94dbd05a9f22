package application

import (
	"time"

	"github.com/bnema/social-accounts-cli/internal/domain"
)

// NewAccount is the construction bundle for Directory.Create.
type NewAccount struct {
	Name           string
	Login          string
	Password       string
	GraduationYear *int
	Birthday       *time.Time
	Status         string
	Friends        []domain.AccountID
}

func (c NewAccount) profile() domain.Profile {
	return domain.Profile{
		Name:           c.Name,
		Status:         c.Status,
		Birthday:       c.Birthday,
		GraduationYear: c.GraduationYear,
	}
}

func (c NewAccount) credentials() domain.Credentials {
	return domain.Credentials{Login: c.Login, Password: c.Password}
}
