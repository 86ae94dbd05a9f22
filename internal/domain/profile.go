package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	BirthdayLayout   = "2006-01-02"
	LastOnlineLayout = "2006-01-02 15:04:05"

	hiddenBirthday = "(hidden)"
)

// Describe renders the profile card shown to other accounts.
func (a Account) Describe(now time.Time) string {
	birthday := hiddenBirthday
	if a.Profile.Birthday != nil {
		birthday = a.Profile.Birthday.Format(BirthdayLayout)
	}

	lines := []string{
		fmt.Sprintf("NaFiztehe. User %q.", a.Profile.Name),
		fmt.Sprintf("Birthday: %s", birthday),
		fmt.Sprintf("Status: %q.", a.Profile.Status),
		fmt.Sprintf("Last online: %s", FormatLastOnline(a.LastOnline)),
	}

	if graduate := a.Profile.IsGraduate(now); graduate != nil && *graduate {
		lines = append(lines, fmt.Sprintf("Graduate of %d", *a.Profile.GraduationYear))
	}

	return strings.Join(lines, "\n")
}

func FormatLastOnline(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(LastOnlineLayout)
}
