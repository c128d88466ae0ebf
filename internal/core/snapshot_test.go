package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob", "carol")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	require.NoError(t, n.EditProfile(alice, "city", "Recife"))
	require.NoError(t, n.AddFriend(alice, "bob"))
	require.NoError(t, n.AddFriend(bob, "alice"))
	require.NoError(t, n.AddFriend(alice, "carol"))
	require.NoError(t, n.AddIdol(bob, "alice"))
	require.NoError(t, n.AddCrush(bob, "carol"))
	require.NoError(t, n.AddEnemy(bob, "carol"))
	require.NoError(t, n.CreateCommunity(alice, "gophers", "Go talk"))
	require.NoError(t, n.JoinCommunity(bob, "gophers"))
	require.NoError(t, n.SendNotice(alice, "bob", "hi bob"))
	_, err := n.Broadcast(alice, "gophers", "meetup")
	require.NoError(t, err)

	fresh := NewNetwork()
	fresh.ImportSnapshot(n.ExportSnapshot())

	// Attributes survive.
	v, err := fresh.GetAttribute("alice", "city")
	require.NoError(t, err)
	assert.Equal(t, "Recife", v)

	// Friend state survives, confirmed and pending alike.
	friends, err := fresh.Friends("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, friends)
	carol, err := fresh.OpenSession("carol", "pw")
	require.NoError(t, err)
	require.NoError(t, fresh.AddFriend(carol, "alice"))
	ok, err := fresh.AreFriends("carol", "alice")
	require.NoError(t, err)
	assert.True(t, ok, "pending invite must survive the round trip")

	// Directed relations survive.
	fan, err := fresh.IsFan("bob", "alice")
	require.NoError(t, err)
	assert.True(t, fan)
	crush, err := fresh.IsCrush("bob", "carol")
	require.NoError(t, err)
	assert.True(t, crush)

	// Communities and membership history survive.
	owner, err := fresh.CommunityOwner("gophers")
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
	members, err := fresh.CommunityMembers("gophers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, members)
	communities, err := fresh.CommunitiesOf("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"gophers"}, communities)

	// Queues survive in order; sessions do not.
	freshBob, err := fresh.OpenSession("bob", "pw")
	require.NoError(t, err)
	text, err := fresh.ReadNotice(freshBob)
	require.NoError(t, err)
	assert.Equal(t, "hi bob", text)
	text, err = fresh.ReadMessage(freshBob)
	require.NoError(t, err)
	assert.Equal(t, "meetup", text)
	_, err = fresh.ResolveSession(alice)
	assert.ErrorIs(t, err, ErrUnknownSession)

	// Creation order is preserved for derived fan listings.
	fans, err := fresh.Fans("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, fans)
}

func TestImportSnapshot_NilStartsEmpty(t *testing.T) {
	n := newTestNetwork(t, "alice")

	n.ImportSnapshot(nil)

	_, err := n.GetAttribute("alice", "name")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
