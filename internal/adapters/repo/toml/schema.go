package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	NextID   uint64          `toml:"next_id"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID         uint64          `toml:"id"`
	Profile    profileSchema   `toml:"profile"`
	Login      string          `toml:"login"`
	SecretRef  string          `toml:"secret_ref,omitempty"`
	LastOnline string          `toml:"last_online,omitempty"`
	Relations  relationsSchema `toml:"relations"`
	History    []historySchema `toml:"history,omitempty"`
}

type profileSchema struct {
	Name           string `toml:"name"`
	Status         string `toml:"status,omitempty"`
	Birthday       string `toml:"birthday,omitempty"`
	GraduationYear *int   `toml:"graduation_year,omitempty"`
}

type relationsSchema struct {
	Friends  []uint64 `toml:"friends"`
	Blocked  []uint64 `toml:"blocked"`
	Incoming []uint64 `toml:"incoming"`
	Outgoing []uint64 `toml:"outgoing"`
}

type historySchema struct {
	At     string `toml:"at"`
	Action string `toml:"action"`
	Peer   uint64 `toml:"peer,omitempty"`
}
