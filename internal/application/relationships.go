package application

import (
	"slices"

	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type transitionFunc func(self, peer *accountState) domain.Outcome

// SendFriendRequest proposes friendship from self to peer. Sending a request
// lifts any block self holds on peer.
func (d *Directory) SendFriendRequest(self, peer domain.AccountID) (Result, error) {
	return d.transition("SendFriendRequest", domain.ActionAddFriend, self, peer, func(self, peer *accountState) domain.Outcome {
		switch {
		case peer.blocked.has(self.id):
			return domain.OutcomeBlockedByPeer
		case self.friends.has(peer.id):
			return domain.OutcomeAlreadyFriends
		case self.outgoing.has(peer.id):
			return domain.OutcomeAlreadyRequested
		case self.incoming.has(peer.id):
			// Crossing requests stay pending; the peer's request must be answered explicitly.
			return domain.OutcomeRequestPending
		}

		self.blocked.remove(peer.id)
		self.outgoing.add(peer.id)
		peer.incoming.add(self.id)
		return domain.OutcomeSent
	})
}

// RespondToFriendRequest answers the pending request peer sent to self.
func (d *Directory) RespondToFriendRequest(self, peer domain.AccountID, accept bool) (Result, error) {
	return d.transition("RespondToFriendRequest", domain.ActionRespondRequest, self, peer, func(self, peer *accountState) domain.Outcome {
		if !self.incoming.has(peer.id) {
			return domain.OutcomeRequestNotFound
		}

		self.incoming.remove(peer.id)
		peer.outgoing.remove(self.id)
		if !accept {
			return domain.OutcomeRejected
		}

		self.friends.add(peer.id)
		peer.friends.add(self.id)
		return domain.OutcomeAccepted
	})
}

func (d *Directory) RemoveFriend(self, peer domain.AccountID) (Result, error) {
	return d.transition("RemoveFriend", domain.ActionRemoveFriend, self, peer, func(self, peer *accountState) domain.Outcome {
		if !self.friends.has(peer.id) {
			return domain.OutcomeNotFriends
		}

		self.friends.remove(peer.id)
		peer.friends.remove(self.id)
		return domain.OutcomeRemoved
	})
}

// BlockUser blocks peer and, in the same critical section, dissolves the
// friendship and any pending request between the two accounts.
func (d *Directory) BlockUser(self, peer domain.AccountID) (Result, error) {
	return d.transition("BlockUser", domain.ActionBlock, self, peer, func(self, peer *accountState) domain.Outcome {
		if self.blocked.has(peer.id) {
			return domain.OutcomeAlreadyBlocked
		}

		self.blocked.add(peer.id)
		self.friends.remove(peer.id)
		peer.friends.remove(self.id)
		self.incoming.remove(peer.id)
		peer.outgoing.remove(self.id)
		self.outgoing.remove(peer.id)
		peer.incoming.remove(self.id)
		return domain.OutcomeBlocked
	})
}

func (d *Directory) UnblockUser(self, peer domain.AccountID) (Result, error) {
	return d.transition("UnblockUser", domain.ActionUnblock, self, peer, func(self, peer *accountState) domain.Outcome {
		if !self.blocked.has(peer.id) {
			return domain.OutcomeNotBlocked
		}

		self.blocked.remove(peer.id)
		return domain.OutcomeUnblocked
	})
}

// MutualFriends returns the ids both accounts are friends with, ascending.
func (d *Directory) MutualFriends(self, peer domain.AccountID) ([]domain.AccountID, error) {
	actor, other, err := d.lookupPair(self, peer)
	if err != nil {
		return nil, err
	}

	unlock := lockPair(actor, other)
	defer unlock()

	actor.record(d.clock.Now(), domain.ActionGetMutualFriends, other.id)
	mutual := lo.Intersect(actor.friends.sorted(), other.friends.sorted())
	slices.Sort(mutual)
	return mutual, nil
}

// Describe returns the profile card of peer as seen by self.
func (d *Directory) Describe(self, peer domain.AccountID) (string, error) {
	actor, other, err := d.lookupPair(self, peer)
	if err != nil {
		return "", err
	}

	unlock := lockPair(actor, other)
	defer unlock()

	now := d.clock.Now()
	actor.record(now, domain.ActionDescribe, other.id)
	return other.view().Describe(now), nil
}

func (d *Directory) Friends(self domain.AccountID) ([]domain.AccountID, error) {
	return d.readSet(self, domain.ActionGetFriends, func(a *accountState) idSet { return a.friends })
}

func (d *Directory) BlockedUsers(self domain.AccountID) ([]domain.AccountID, error) {
	return d.readSet(self, domain.ActionGetBlocked, func(a *accountState) idSet { return a.blocked })
}

func (d *Directory) IncomingRequests(self domain.AccountID) ([]domain.AccountID, error) {
	return d.readSet(self, domain.ActionGetIncoming, func(a *accountState) idSet { return a.incoming })
}

func (d *Directory) OutgoingRequests(self domain.AccountID) ([]domain.AccountID, error) {
	return d.readSet(self, domain.ActionGetOutgoing, func(a *accountState) idSet { return a.outgoing })
}

func (d *Directory) readSet(self domain.AccountID, action domain.Action, pick func(*accountState) idSet) ([]domain.AccountID, error) {
	account, err := d.lookup(self)
	if err != nil {
		return nil, err
	}

	account.mu.Lock()
	defer account.mu.Unlock()

	account.record(d.clock.Now(), action, 0)
	return pick(account).sorted(), nil
}

// transition runs apply with both accounts locked. Unknown ids and
// self-targeting fail before anything is recorded.
func (d *Directory) transition(op string, action domain.Action, selfID, peerID domain.AccountID, apply transitionFunc) (Result, error) {
	self, peer, err := d.lookupPair(selfID, peerID)
	if err != nil {
		return Result{}, err
	}
	if self == peer {
		return Result{}, &InvalidOperationError{Op: op, ID: selfID}
	}

	unlock := lockPair(self, peer)
	defer unlock()

	self.record(d.clock.Now(), action, peer.id)
	outcome := apply(self, peer)

	result := Result{
		Outcome: outcome,
		Actor:   self.id,
		Peer:    peer.id,
		Message: outcome.Message(peer.profile.Name),
	}

	entry := d.logger.WithFields(logrus.Fields{
		"function": op,
		"actor":    self.id,
		"peer":     peer.id,
		"outcome":  outcome,
	})
	if outcome.Changed() {
		entry.Info("Relationship updated")
	} else {
		entry.Debug("Relationship unchanged")
	}

	return result, nil
}

func (d *Directory) lookupPair(selfID, peerID domain.AccountID) (*accountState, *accountState, error) {
	self, err := d.lookup(selfID)
	if err != nil {
		return nil, nil, err
	}
	peer, err := d.lookup(peerID)
	if err != nil {
		return nil, nil, err
	}
	return self, peer, nil
}
