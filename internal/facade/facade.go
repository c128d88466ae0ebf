// Package facade exposes the caller-visible surface of the social network:
// session-keyed operations with collection results rendered as {a,b,c}
// textual sets in insertion order.
package facade

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jackut-dev/jackut/internal/core"
)

type Facade struct {
	net   *core.Network
	store core.SnapshotStore
	log   *zap.Logger
}

// New wraps the network. The store may be nil, in which case Startup and
// Shutdown skip persistence entirely.
func New(net *core.Network, store core.SnapshotStore, log *zap.Logger) *Facade {
	if log == nil {
		log = zap.NewNop()
	}
	return &Facade{net: net, store: store, log: log}
}

func (f *Facade) Network() *core.Network {
	return f.net
}

func (f *Facade) CreateUser(login, password, name string) error {
	return f.net.CreateUser(login, password, name)
}

func (f *Facade) OpenSession(login, password string) (string, error) {
	return f.net.OpenSession(login, password)
}

func (f *Facade) GetAttribute(login, name string) (string, error) {
	return f.net.GetAttribute(login, name)
}

func (f *Facade) EditProfile(session, name, value string) error {
	return f.net.EditProfile(session, name, value)
}

func (f *Facade) AddFriend(session, target string) error {
	return f.net.AddFriend(session, target)
}

func (f *Facade) AreFriends(login, other string) (bool, error) {
	return f.net.AreFriends(login, other)
}

func (f *Facade) ListFriends(login string) (string, error) {
	friends, err := f.net.Friends(login)
	if err != nil {
		return "", err
	}
	return FormatSet(friends), nil
}

func (f *Facade) SendNotice(session, recipient, text string) error {
	return f.net.SendNotice(session, recipient, text)
}

func (f *Facade) ReadNotice(session string) (string, error) {
	return f.net.ReadNotice(session)
}

func (f *Facade) CreateCommunity(session, name, description string) error {
	return f.net.CreateCommunity(session, name, description)
}

func (f *Facade) CommunityDescription(name string) (string, error) {
	return f.net.CommunityDescription(name)
}

func (f *Facade) CommunityOwner(name string) (string, error) {
	return f.net.CommunityOwner(name)
}

func (f *Facade) CommunityMembers(name string) (string, error) {
	members, err := f.net.CommunityMembers(name)
	if err != nil {
		return "", err
	}
	return FormatSet(members), nil
}

// CommunitiesOf accepts a session token or a raw login.
func (f *Facade) CommunitiesOf(key string) (string, error) {
	names, err := f.net.CommunitiesOf(key)
	if err != nil {
		return "", err
	}
	return FormatSet(names), nil
}

func (f *Facade) JoinCommunity(session, name string) error {
	return f.net.JoinCommunity(session, name)
}

func (f *Facade) Broadcast(session, community, text string) error {
	_, err := f.net.Broadcast(session, community, text)
	return err
}

func (f *Facade) ReadMessage(session string) (string, error) {
	return f.net.ReadMessage(session)
}

func (f *Facade) AddIdol(session, idol string) error {
	return f.net.AddIdol(session, idol)
}

func (f *Facade) IsFan(key, idol string) (bool, error) {
	return f.net.IsFan(key, idol)
}

func (f *Facade) ListFans(idol string) (string, error) {
	fans, err := f.net.Fans(idol)
	if err != nil {
		return "", err
	}
	return FormatSet(fans), nil
}

func (f *Facade) AddCrush(session, crush string) error {
	return f.net.AddCrush(session, crush)
}

func (f *Facade) IsCrush(key, other string) (bool, error) {
	return f.net.IsCrush(key, other)
}

func (f *Facade) ListCrushes(key string) (string, error) {
	crushes, err := f.net.Crushes(key)
	if err != nil {
		return "", err
	}
	return FormatSet(crushes), nil
}

func (f *Facade) AddEnemy(session, enemy string) error {
	return f.net.AddEnemy(session, enemy)
}

func (f *Facade) RemoveAccount(session string) error {
	return f.net.RemoveAccount(session)
}

func (f *Facade) ResetSystem() {
	f.net.Reset()
}

// Startup loads the persisted snapshot, best-effort: any storage failure
// starts the system empty.
func (f *Facade) Startup(ctx context.Context) {
	if f.store == nil {
		return
	}
	snap, err := f.store.Load(ctx)
	if err != nil {
		f.log.Warn("snapshot load failed, starting empty", zap.Error(err))
		return
	}
	f.net.ImportSnapshot(snap)
}

// Shutdown saves the snapshot and clears all sessions. A save failure is
// logged and otherwise ignored; losing the snapshot is an accepted
// limitation.
func (f *Facade) Shutdown(ctx context.Context) {
	if f.store != nil {
		if err := f.store.Save(ctx, f.net.ExportSnapshot()); err != nil {
			f.log.Error("snapshot save failed", zap.Error(err))
		}
	}
	f.net.CloseSessions()
}

// FormatSet renders a collection as {a,b,c} in the given order, with no
// trailing separator.
func FormatSet(items []string) string {
	return "{" + strings.Join(items, ",") + "}"
}
