package core

import (
	"context"
	"sort"
)

// Snapshot is the persistence exchange format: everything that survives a
// process restart. Sessions are deliberately absent. Users appear in
// account creation order so an import reproduces directory iteration order.
type Snapshot struct {
	Users       []UserSnapshot      `json:"users"`
	Communities []CommunitySnapshot `json:"communities"`
}

type UserSnapshot struct {
	Login       string            `json:"login"`
	Password    string            `json:"password"`
	Name        string            `json:"name"`
	Attributes  map[string]string `json:"attributes"`
	Friends     []string          `json:"friends"`
	Invites     []string          `json:"invites"`
	Idols       []string          `json:"idols"`
	Crushes     []string          `json:"crushes"`
	Enemies     []string          `json:"enemies"`
	Notices     []string          `json:"notices"`
	Messages    []string          `json:"messages"`
	Communities []string          `json:"communities"`
}

type CommunitySnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Members     []string `json:"members"`
}

// SnapshotStore is the persistence gateway. The encoding and storage medium
// are the collaborator's concern; the core only exchanges snapshots at
// process boundaries.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// ExportSnapshot captures the full persistent state.
func (n *Network) ExportSnapshot() *Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()

	snap := &Snapshot{}
	for _, login := range n.users.Logins() {
		u, _ := n.users.Get(login)
		attrs := make(map[string]string, len(u.Attributes))
		for k, v := range u.Attributes {
			attrs[k] = v
		}
		snap.Users = append(snap.Users, UserSnapshot{
			Login:       u.Login,
			Password:    u.Password,
			Name:        u.Name,
			Attributes:  attrs,
			Friends:     append([]string(nil), n.graph.friends[login]...),
			Invites:     sortedKeys(n.graph.invites[login]),
			Idols:       append([]string(nil), n.graph.idols[login]...),
			Crushes:     append([]string(nil), n.graph.crushes[login]...),
			Enemies:     sortedKeys(n.graph.enemies[login]),
			Notices:     append([]string(nil), n.queues.Notices(login)...),
			Messages:    append([]string(nil), n.queues.Messages(login)...),
			Communities: append([]string(nil), n.communities.MembershipsOf(login)...),
		})
	}

	names := make([]string, 0, len(n.communities.communities))
	for name := range n.communities.communities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := n.communities.communities[name]
		snap.Communities = append(snap.Communities, CommunitySnapshot{
			Name:        c.Name,
			Description: c.Description,
			Owner:       c.Owner,
			Members:     append([]string(nil), c.Members...),
		})
	}
	return snap
}

// ImportSnapshot replaces the whole state with the snapshot's contents.
// Sessions are cleared: tokens never survive a restart.
func (n *Network) ImportSnapshot(snap *Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.users.Clear()
	n.sessions.Clear()
	n.graph.Clear()
	n.communities.Clear()
	n.queues.Clear()
	if snap == nil {
		return
	}

	for _, us := range snap.Users {
		u := &User{
			Login:      us.Login,
			Password:   us.Password,
			Name:       us.Name,
			Attributes: make(map[string]string, len(us.Attributes)),
		}
		for k, v := range us.Attributes {
			u.Attributes[k] = v
		}
		n.users.users[us.Login] = u
		n.users.order = append(n.users.order, us.Login)

		if len(us.Friends) > 0 {
			n.graph.friends[us.Login] = append([]string(nil), us.Friends...)
		}
		for _, from := range us.Invites {
			n.graph.addInvite(us.Login, from)
		}
		if len(us.Idols) > 0 {
			n.graph.idols[us.Login] = append([]string(nil), us.Idols...)
		}
		if len(us.Crushes) > 0 {
			n.graph.crushes[us.Login] = append([]string(nil), us.Crushes...)
		}
		for _, enemy := range us.Enemies {
			if n.graph.enemies[us.Login] == nil {
				n.graph.enemies[us.Login] = make(map[string]struct{})
			}
			n.graph.enemies[us.Login][enemy] = struct{}{}
		}
		for _, text := range us.Notices {
			n.queues.PushNotice(us.Login, text)
		}
		for _, text := range us.Messages {
			n.queues.PushMessage(us.Login, text)
		}
		if len(us.Communities) > 0 {
			n.communities.history[us.Login] = append([]string(nil), us.Communities...)
		}
	}

	for _, cs := range snap.Communities {
		n.communities.communities[cs.Name] = &Community{
			Name:        cs.Name,
			Description: cs.Description,
			Owner:       cs.Owner,
			Members:     append([]string(nil), cs.Members...),
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
