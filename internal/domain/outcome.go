package domain

import "fmt"

// Outcome is the result of a relationship transition. Soft outcomes such as
// AlreadyFriends are regular results, not errors.
type Outcome string

const (
	OutcomeSent             Outcome = "sent"
	OutcomeAlreadyFriends   Outcome = "already_friends"
	OutcomeAlreadyRequested Outcome = "already_requested"
	OutcomeRequestPending   Outcome = "request_pending"
	OutcomeBlockedByPeer    Outcome = "blocked_by_peer"
	OutcomeAccepted         Outcome = "accepted"
	OutcomeRejected         Outcome = "rejected"
	OutcomeRequestNotFound  Outcome = "request_not_found"
	OutcomeRemoved          Outcome = "removed"
	OutcomeNotFriends       Outcome = "not_friends"
	OutcomeBlocked          Outcome = "blocked"
	OutcomeAlreadyBlocked   Outcome = "already_blocked"
	OutcomeUnblocked        Outcome = "unblocked"
	OutcomeNotBlocked       Outcome = "not_blocked"
)

// Changed reports whether the transition mutated relationship state.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeSent, OutcomeAccepted, OutcomeRejected, OutcomeRemoved, OutcomeBlocked, OutcomeUnblocked:
		return true
	default:
		return false
	}
}

// Message renders the console text for the outcome, addressed to the acting account.
func (o Outcome) Message(peerName string) string {
	switch o {
	case OutcomeSent:
		return "Your request was sent"
	case OutcomeAlreadyFriends:
		return fmt.Sprintf("You're already a friend of %s", peerName)
	case OutcomeAlreadyRequested:
		return fmt.Sprintf("You've already sent a friend request to %s", peerName)
	case OutcomeRequestPending:
		return fmt.Sprintf("%s has already sent you a friend request", peerName)
	case OutcomeBlockedByPeer:
		return fmt.Sprintf("You can't add %s because you're blocked", peerName)
	case OutcomeAccepted:
		return fmt.Sprintf("You and %s are now friends", peerName)
	case OutcomeRejected:
		return fmt.Sprintf("You rejected the friend request from %s", peerName)
	case OutcomeRequestNotFound:
		return fmt.Sprintf("%s isn't in your friend requests. Check the id one more time", peerName)
	case OutcomeRemoved:
		return fmt.Sprintf("You deleted %s from your friends", peerName)
	case OutcomeNotFriends:
		return fmt.Sprintf("%s isn't your friend", peerName)
	case OutcomeBlocked:
		return fmt.Sprintf("You blocked %s", peerName)
	case OutcomeAlreadyBlocked:
		return fmt.Sprintf("You've already blocked %s", peerName)
	case OutcomeUnblocked:
		return fmt.Sprintf("You unblocked %s", peerName)
	case OutcomeNotBlocked:
		return fmt.Sprintf("%s isn't blocked", peerName)
	default:
		return string(o)
	}
}
