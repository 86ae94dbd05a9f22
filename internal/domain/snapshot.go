package domain

// Snapshot is the full exported state of a directory.
type Snapshot struct {
	NextID   AccountID
	Accounts []AccountRecord
}

type AccountRecord struct {
	Account Account
	History []HistoryEntry
}
