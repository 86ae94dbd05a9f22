package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/bnema/social-accounts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	statePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".sa"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
	passwordKeyFmt  = "sa/accounts/%d/password"
)

// SnapshotStore keeps the directory snapshot in a single TOML file. Passwords
// never reach the file: they go to the secret store and the file keeps a
// reference.
type SnapshotStore struct {
	statePath string
	secrets   ports.SecretStore
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(cfg *viper.Viper, secrets ports.SecretStore) (*SnapshotStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if secrets == nil {
		return nil, errors.New("secret store is nil")
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		statePath = filepath.Join(homeDir, stateConfigDir, stateConfigFile)
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &SnapshotStore{statePath: statePath, secrets: secrets, mu: lockForPath(statePath)}, nil
}

func (s *SnapshotStore) Path() string {
	return s.statePath
}

// Load returns an empty snapshot when the state file does not exist yet.
func (s *SnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.Snapshot{}, err
	}

	snapshot := domain.Snapshot{
		NextID:   domain.AccountID(file.NextID),
		Accounts: make([]domain.AccountRecord, 0, len(file.Accounts)),
	}
	for _, entry := range file.Accounts {
		record, err := fromSchema(entry)
		if err != nil {
			return domain.Snapshot{}, err
		}
		if entry.SecretRef != "" {
			password, err := s.secrets.Get(ctx, entry.SecretRef)
			if err != nil {
				return domain.Snapshot{}, fmt.Errorf("load password for account %d: %w", entry.ID, err)
			}
			record.Account.Credentials.Password = password
		}
		snapshot.Accounts = append(snapshot.Accounts, record)
	}

	return snapshot, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := fileSchema{
		Version:  currentSchemaVersion,
		NextID:   uint64(snapshot.NextID),
		Accounts: make([]accountSchema, 0, len(snapshot.Accounts)),
	}
	for _, record := range snapshot.Accounts {
		encoded := toSchema(record)
		key := passwordKey(record.Account.ID)
		if password := record.Account.Credentials.Password; password != "" {
			if err := s.secrets.Put(ctx, key, password); err != nil {
				return fmt.Errorf("store password for account %s: %w", record.Account.ID, err)
			}
			encoded.SecretRef = key
		} else if err := s.secrets.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear password for account %s: %w", record.Account.ID, err)
		}
		file.Accounts = append(file.Accounts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

func (s *SnapshotStore) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *SnapshotStore) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, s.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func passwordKey(id domain.AccountID) string {
	return fmt.Sprintf(passwordKeyFmt, uint64(id))
}

func toSchema(record domain.AccountRecord) accountSchema {
	account := record.Account

	profile := profileSchema{
		Name:           account.Profile.Name,
		Status:         account.Profile.Status,
		GraduationYear: account.Profile.GraduationYear,
	}
	if account.Profile.Birthday != nil {
		profile.Birthday = account.Profile.Birthday.Format(domain.BirthdayLayout)
	}

	return accountSchema{
		ID:         uint64(account.ID),
		Profile:    profile,
		Login:      account.Credentials.Login,
		LastOnline: formatTime(account.LastOnline),
		Relations: relationsSchema{
			Friends:  toIDs(account.Friends),
			Blocked:  toIDs(account.Blocked),
			Incoming: toIDs(account.IncomingRequests),
			Outgoing: toIDs(account.OutgoingRequests),
		},
		History: lo.Map(record.History, func(entry domain.HistoryEntry, _ int) historySchema {
			return historySchema{At: formatTime(entry.At), Action: string(entry.Action), Peer: uint64(entry.Peer)}
		}),
	}
}

func fromSchema(entry accountSchema) (domain.AccountRecord, error) {
	lastOnline, err := parseTime(entry.LastOnline)
	if err != nil {
		return domain.AccountRecord{}, fmt.Errorf("%w: account %d last_online: %v", domain.ErrCorruptedSnapshot, entry.ID, err)
	}

	profile := domain.Profile{
		Name:           entry.Profile.Name,
		Status:         entry.Profile.Status,
		GraduationYear: entry.Profile.GraduationYear,
	}
	if entry.Profile.Birthday != "" {
		birthday, err := time.Parse(domain.BirthdayLayout, entry.Profile.Birthday)
		if err != nil {
			return domain.AccountRecord{}, fmt.Errorf("%w: account %d birthday: %v", domain.ErrCorruptedSnapshot, entry.ID, err)
		}
		profile.Birthday = &birthday
	}

	history := make([]domain.HistoryEntry, 0, len(entry.History))
	for _, item := range entry.History {
		at, err := parseTime(item.At)
		if err != nil {
			return domain.AccountRecord{}, fmt.Errorf("%w: account %d history: %v", domain.ErrCorruptedSnapshot, entry.ID, err)
		}
		history = append(history, domain.HistoryEntry{
			At:     at,
			Action: domain.Action(item.Action),
			Peer:   domain.AccountID(item.Peer),
		})
	}

	return domain.AccountRecord{
		Account: domain.Account{
			ID:               domain.AccountID(entry.ID),
			Profile:          profile,
			Credentials:      domain.Credentials{Login: entry.Login},
			LastOnline:       lastOnline,
			Friends:          fromIDs(entry.Relations.Friends),
			Blocked:          fromIDs(entry.Relations.Blocked),
			IncomingRequests: fromIDs(entry.Relations.Incoming),
			OutgoingRequests: fromIDs(entry.Relations.Outgoing),
		},
		History: history,
	}, nil
}

func toIDs(ids []domain.AccountID) []uint64 {
	return lo.Map(ids, func(id domain.AccountID, _ int) uint64 { return uint64(id) })
}

func fromIDs(ids []uint64) []domain.AccountID {
	return lo.Map(ids, func(id uint64, _ int) domain.AccountID { return domain.AccountID(id) })
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339Nano, raw)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
