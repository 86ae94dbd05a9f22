package domain

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionCreate           Action = "Create an account"
	ActionGetFriends       Action = "Get friends"
	ActionGetBlocked       Action = "Get blocked users"
	ActionGetIncoming      Action = "Get incoming requests"
	ActionGetOutgoing      Action = "Get outgoing requests"
	ActionGetMutualFriends Action = "Get mutual friends"
	ActionDescribe         Action = "Describe"
	ActionAddFriend        Action = "Add friend"
	ActionRespondRequest   Action = "Respond to friend request"
	ActionRemoveFriend     Action = "Remove friend"
	ActionBlock            Action = "Block user"
	ActionUnblock          Action = "Unblock user"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionGetFriends, ActionGetBlocked, ActionGetIncoming, ActionGetOutgoing,
		ActionGetMutualFriends, ActionDescribe, ActionAddFriend, ActionRespondRequest,
		ActionRemoveFriend, ActionBlock, ActionUnblock:
		return true
	default:
		return false
	}
}

// HistoryEntry is one record of the per-account activity log. Peer is zero for
// actions that do not target another account.
type HistoryEntry struct {
	At     time.Time
	Action Action
	Peer   AccountID
}

func (e HistoryEntry) Label() string {
	if e.Action == ActionDescribe && e.Peer != 0 {
		return fmt.Sprintf("%s %s", e.Action, e.Peer)
	}
	return string(e.Action)
}
