package core

import (
	"fmt"
	"sync"
)

// crushNoticeFormat is the system notice delivered to both parties when a
// crush becomes mutual. The argument is the other party's display name.
const crushNoticeFormat = "%s is your crush - message from Jackut."

// Network is the aggregate root: it owns every component and the single
// exclusive-writer lock. Cross-entity invariants (confirming a friendship
// touches two users, removing an account cascades everywhere) require that
// no operation observes a partial mutation, so every mutating operation
// holds the write lock for its whole span. Reads that stay within one
// entity take the shared lock.
type Network struct {
	mu          sync.RWMutex
	users       *UserDirectory
	sessions    *SessionRegistry
	graph       *RelationshipGraph
	communities *CommunityRegistry
	queues      *MessagingQueues
}

func NewNetwork() *Network {
	users := NewUserDirectory()
	return &Network{
		users:       users,
		sessions:    NewSessionRegistry(users),
		graph:       NewRelationshipGraph(users),
		communities: NewCommunityRegistry(users),
		queues:      NewMessagingQueues(),
	}
}

func (n *Network) CreateUser(login, password, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.users.Create(login, password, name)
}

func (n *Network) OpenSession(login, password string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sessions.Open(login, password)
}

// ResolveSession returns the login behind an active session token.
func (n *Network) ResolveSession(token string) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sessions.Resolve(token)
}

func (n *Network) GetAttribute(login, name string) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.users.Attribute(login, name)
}

func (n *Network) EditProfile(token, name, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	login, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.users.SetAttribute(login, name, value)
}

func (n *Network) AddFriend(token, target string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	requester, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.graph.RequestFriend(requester, target)
}

func (n *Network) AreFriends(login, other string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.users.Contains(login) {
		return false, ErrUnknownUser
	}
	return n.graph.AreFriends(login, other), nil
}

func (n *Network) Friends(login string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.users.Contains(login) {
		return nil, ErrUnknownUser
	}
	// Copied so the caller never holds a backing array the removal cascade
	// rewrites in place after the lock is released.
	return append([]string(nil), n.graph.Friends(login)...), nil
}

// SendNotice appends a private notice to the recipient's queue. Recipients
// who hold the sender as an enemy refuse delivery.
func (n *Network) SendNotice(token, recipient, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	sender, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	if sender == recipient {
		return ErrSelfReferenceNotAllowed
	}
	ru, err := n.users.Get(recipient)
	if err != nil {
		return err
	}
	if n.graph.IsEnemy(recipient, sender) {
		return enmityError(ru.Name)
	}
	n.queues.PushNotice(recipient, text)
	return nil
}

func (n *Network) ReadNotice(token string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	login, err := n.sessions.Resolve(token)
	if err != nil {
		return "", err
	}
	return n.queues.PopNotice(login)
}

func (n *Network) CreateCommunity(token, name, description string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	owner, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.communities.Create(owner, name, description)
}

func (n *Network) CommunityDescription(name string) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, err := n.communities.Get(name)
	if err != nil {
		return "", err
	}
	return c.Description, nil
}

func (n *Network) CommunityOwner(name string) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, err := n.communities.Get(name)
	if err != nil {
		return "", err
	}
	return c.Owner, nil
}

func (n *Network) CommunityMembers(name string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, err := n.communities.Get(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), c.Members...), nil
}

func (n *Network) JoinCommunity(token, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	login, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.communities.Join(login, name)
}

// CommunitiesOf accepts either an active session token or a raw login.
func (n *Network) CommunitiesOf(key string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	login, err := n.resolveKey(key)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), n.communities.MembershipsOf(login)...), nil
}

// Broadcast delivers the text to every current member's community inbox,
// skipping members who hold the sender as an enemy. The sender receives it
// too when a member. Delivery is send-and-forget; the returned logins are
// the members actually delivered to.
func (n *Network) Broadcast(token, community, text string) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sender, err := n.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	c, err := n.communities.Get(community)
	if err != nil {
		return nil, err
	}
	var recipients []string
	for _, member := range c.Members {
		if !n.graph.IsEnemy(member, sender) {
			n.queues.PushMessage(member, text)
			recipients = append(recipients, member)
		}
	}
	return recipients, nil
}

func (n *Network) ReadMessage(token string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	login, err := n.sessions.Resolve(token)
	if err != nil {
		return "", err
	}
	return n.queues.PopMessage(login)
}

func (n *Network) AddIdol(token, idol string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	subject, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.graph.AddIdol(subject, idol)
}

func (n *Network) IsFan(key, idol string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	login, err := n.resolveKey(key)
	if err != nil {
		return false, err
	}
	return n.graph.IsFan(login, idol), nil
}

func (n *Network) Fans(idol string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.users.Contains(idol) {
		return nil, ErrUnknownUser
	}
	return n.graph.Fans(idol), nil
}

// AddCrush records the crush and, exactly once per transition into the
// mutual state, delivers the match notice to both parties.
func (n *Network) AddCrush(token, crush string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	subject, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	mutual, err := n.graph.AddCrush(subject, crush)
	if err != nil {
		return err
	}
	if mutual {
		su, _ := n.users.Get(subject)
		cu, _ := n.users.Get(crush)
		n.queues.PushNotice(subject, fmt.Sprintf(crushNoticeFormat, cu.Name))
		n.queues.PushNotice(crush, fmt.Sprintf(crushNoticeFormat, su.Name))
	}
	return nil
}

func (n *Network) IsCrush(key, other string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	login, err := n.resolveKey(key)
	if err != nil {
		return false, err
	}
	return n.graph.IsCrush(login, other), nil
}

func (n *Network) Crushes(key string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	login, err := n.resolveKey(key)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), n.graph.Crushes(login)...), nil
}

func (n *Network) AddEnemy(token, enemy string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	subject, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	return n.graph.AddEnemy(subject, enemy)
}

// RemoveAccount deletes the session's account and runs the whole cascade
// under the write lock, so no partial cascade is observable: sessions and
// owned communities go away, every remaining user loses the login from
// their friend and crush lists, all queues are purged (a historical quirk
// kept for compatibility: every user's queues, not only the removed one's),
// and membership histories are pruned to communities that still exist.
func (n *Network) RemoveAccount(token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	login, err := n.sessions.Resolve(token)
	if err != nil {
		return err
	}
	n.users.Remove(login)
	n.sessions.DropUser(login)
	n.communities.DropOwner(login)
	n.communities.DropUser(login)
	n.graph.DropUser(login)
	n.queues.PurgeAll()
	for _, l := range n.users.Logins() {
		n.communities.PruneHistory(l)
	}
	return nil
}

// Reset wipes all state, sessions included.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users.Clear()
	n.sessions.Clear()
	n.graph.Clear()
	n.communities.Clear()
	n.queues.Clear()
}

// CloseSessions bulk-clears the session table. Called at shutdown; tokens
// are never invalidated individually.
func (n *Network) CloseSessions() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sessions.Clear()
}

func (n *Network) resolveKey(key string) (string, error) {
	if n.sessions.Contains(key) {
		return n.sessions.Resolve(key)
	}
	if !n.users.Contains(key) {
		return "", ErrUnknownUser
	}
	return key, nil
}
