package application

import "github.com/bnema/social-accounts-cli/internal/domain"

// AccountHandle runs directory operations on behalf of one account.
type AccountHandle struct {
	dir *Directory
	id  domain.AccountID
}

func (h *AccountHandle) ID() domain.AccountID {
	return h.id
}

func (h *AccountHandle) SendFriendRequest(peer domain.AccountID) (Result, error) {
	return h.dir.SendFriendRequest(h.id, peer)
}

func (h *AccountHandle) RespondToFriendRequest(peer domain.AccountID, accept bool) (Result, error) {
	return h.dir.RespondToFriendRequest(h.id, peer, accept)
}

func (h *AccountHandle) RemoveFriend(peer domain.AccountID) (Result, error) {
	return h.dir.RemoveFriend(h.id, peer)
}

func (h *AccountHandle) BlockUser(peer domain.AccountID) (Result, error) {
	return h.dir.BlockUser(h.id, peer)
}

func (h *AccountHandle) UnblockUser(peer domain.AccountID) (Result, error) {
	return h.dir.UnblockUser(h.id, peer)
}

func (h *AccountHandle) MutualFriends(peer domain.AccountID) ([]domain.AccountID, error) {
	return h.dir.MutualFriends(h.id, peer)
}

func (h *AccountHandle) Describe(peer domain.AccountID) (string, error) {
	return h.dir.Describe(h.id, peer)
}

func (h *AccountHandle) Friends() ([]domain.AccountID, error) {
	return h.dir.Friends(h.id)
}

func (h *AccountHandle) BlockedUsers() ([]domain.AccountID, error) {
	return h.dir.BlockedUsers(h.id)
}

func (h *AccountHandle) IncomingRequests() ([]domain.AccountID, error) {
	return h.dir.IncomingRequests(h.id)
}

func (h *AccountHandle) OutgoingRequests() ([]domain.AccountID, error) {
	return h.dir.OutgoingRequests(h.id)
}

func (h *AccountHandle) History() ([]domain.HistoryEntry, error) {
	return h.dir.History(h.id)
}
