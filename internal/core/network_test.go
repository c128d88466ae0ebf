package core

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNetwork(t *testing.T, logins ...string) *Network {
	t.Helper()
	n := NewNetwork()
	for _, l := range logins {
		require.NoError(t, n.CreateUser(l, "pw", "User "+l))
	}
	return n
}

func openTestSession(t *testing.T, n *Network, login string) string {
	t.Helper()
	token, err := n.OpenSession(login, "pw")
	require.NoError(t, err)
	return token
}

func TestOpenSession(t *testing.T) {
	n := newTestNetwork(t, "alice")

	token := openTestSession(t, n, "alice")
	assert.NotEmpty(t, token)

	login, err := n.ResolveSession(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	// Two sessions for the same login get distinct tokens.
	other := openTestSession(t, n, "alice")
	assert.NotEqual(t, token, other)

	_, err = n.OpenSession("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = n.ResolveSession("bogus")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestEditProfile(t *testing.T) {
	n := newTestNetwork(t, "alice")
	token := openTestSession(t, n, "alice")

	assert.ErrorIs(t, n.EditProfile("bogus", "city", "Recife"), ErrUnknownSession)

	require.NoError(t, n.EditProfile(token, "city", "Recife"))
	v, err := n.GetAttribute("alice", "city")
	require.NoError(t, err)
	assert.Equal(t, "Recife", v)
}

func TestSendAndReadNotice(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	_, err := n.ReadNotice(bob)
	assert.ErrorIs(t, err, ErrNoNotices)

	assert.ErrorIs(t, n.SendNotice(alice, "alice", "hi me"), ErrSelfReferenceNotAllowed)
	assert.ErrorIs(t, n.SendNotice(alice, "nobody", "hi"), ErrUnknownUser)

	require.NoError(t, n.SendNotice(alice, "bob", "hi"))
	require.NoError(t, n.SendNotice(alice, "bob", "hi again"))

	text, err := n.ReadNotice(bob)
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	text, err = n.ReadNotice(bob)
	require.NoError(t, err)
	assert.Equal(t, "hi again", text)

	_, err = n.ReadNotice(bob)
	assert.ErrorIs(t, err, ErrNoNotices)
}

func TestSendNotice_EnemyRefusesDelivery(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	require.NoError(t, n.AddEnemy(bob, "alice"))
	assert.ErrorIs(t, n.SendNotice(alice, "bob", "hi"), ErrForbiddenByEnmity)

	// The sender holding the recipient as enemy does not block.
	assert.NoError(t, n.SendNotice(bob, "alice", "hello"))
}

func TestMutualCrushDeliversOneNoticeEach(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	require.NoError(t, n.AddCrush(alice, "bob"))

	_, err := n.ReadNotice(alice)
	assert.ErrorIs(t, err, ErrNoNotices, "one-sided crush must not notify")

	require.NoError(t, n.AddCrush(bob, "alice"))

	text, err := n.ReadNotice(alice)
	require.NoError(t, err)
	assert.Equal(t, "User bob is your crush - message from Jackut.", text)
	_, err = n.ReadNotice(alice)
	assert.ErrorIs(t, err, ErrNoNotices, "exactly one notice per party")

	text, err = n.ReadNotice(bob)
	require.NoError(t, err)
	assert.Equal(t, "User alice is your crush - message from Jackut.", text)
	_, err = n.ReadNotice(bob)
	assert.ErrorIs(t, err, ErrNoNotices)
}

func TestCommunities(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	require.NoError(t, n.CreateCommunity(alice, "gophers", "Go talk"))
	assert.ErrorIs(t, n.CreateCommunity(bob, "gophers", "dup"), ErrDuplicateCommunity)

	desc, err := n.CommunityDescription("gophers")
	require.NoError(t, err)
	assert.Equal(t, "Go talk", desc)

	owner, err := n.CommunityOwner("gophers")
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	members, err := n.CommunityMembers("gophers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)

	_, err = n.CommunityDescription("ghosts")
	assert.ErrorIs(t, err, ErrUnknownCommunity)

	require.NoError(t, n.JoinCommunity(bob, "gophers"))
	assert.ErrorIs(t, n.JoinCommunity(bob, "gophers"), ErrAlreadyMember)
	assert.ErrorIs(t, n.JoinCommunity(bob, "ghosts"), ErrUnknownCommunity)

	members, err = n.CommunityMembers("gophers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, members)
}

func TestCommunitiesOf_SessionOrLogin(t *testing.T) {
	n := newTestNetwork(t, "alice")
	alice := openTestSession(t, n, "alice")

	require.NoError(t, n.CreateCommunity(alice, "gophers", ""))
	require.NoError(t, n.CreateCommunity(alice, "runners", ""))

	bySession, err := n.CommunitiesOf(alice)
	require.NoError(t, err)
	byLogin, err := n.CommunitiesOf("alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"gophers", "runners"}, bySession)
	assert.Equal(t, bySession, byLogin)

	_, err = n.CommunitiesOf("nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestBroadcast(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob", "carol")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")
	carol := openTestSession(t, n, "carol")

	require.NoError(t, n.CreateCommunity(alice, "gophers", ""))
	require.NoError(t, n.JoinCommunity(bob, "gophers"))
	require.NoError(t, n.JoinCommunity(carol, "gophers"))

	// carol holds alice as enemy and is skipped; the sender is a member and
	// receives its own broadcast.
	require.NoError(t, n.AddEnemy(carol, "alice"))
	recipients, err := n.Broadcast(alice, "gophers", "meetup tonight")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, recipients)

	text, err := n.ReadMessage(bob)
	require.NoError(t, err)
	assert.Equal(t, "meetup tonight", text)

	text, err = n.ReadMessage(alice)
	require.NoError(t, err)
	assert.Equal(t, "meetup tonight", text)

	_, err = n.ReadMessage(carol)
	assert.ErrorIs(t, err, ErrNoMessages)

	_, err = n.Broadcast(alice, "ghosts", "boo")
	assert.ErrorIs(t, err, ErrUnknownCommunity)
}

func TestRemoveAccount_Cascade(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob", "carol")
	alice := openTestSession(t, n, "alice")
	aliceAgain := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")
	carol := openTestSession(t, n, "carol")

	require.NoError(t, n.AddFriend(alice, "bob"))
	require.NoError(t, n.AddFriend(bob, "alice"))
	require.NoError(t, n.AddCrush(bob, "alice"))
	require.NoError(t, n.CreateCommunity(alice, "gophers", ""))
	require.NoError(t, n.JoinCommunity(bob, "gophers"))
	require.NoError(t, n.CreateCommunity(bob, "runners", ""))
	require.NoError(t, n.SendNotice(alice, "carol", "pending notice"))

	require.NoError(t, n.RemoveAccount(alice))

	// Account and its sessions are gone.
	_, err := n.GetAttribute("alice", "name")
	assert.ErrorIs(t, err, ErrUnknownUser)
	_, err = n.ResolveSession(alice)
	assert.ErrorIs(t, err, ErrUnknownSession)
	_, err = n.ResolveSession(aliceAgain)
	assert.ErrorIs(t, err, ErrUnknownSession)

	// Owned communities are dropped, others survive.
	_, err = n.CommunityDescription("gophers")
	assert.ErrorIs(t, err, ErrUnknownCommunity)
	_, err = n.CommunityDescription("runners")
	assert.NoError(t, err)

	// No remaining user still lists alice as friend or crush.
	friends, err := n.Friends("bob")
	require.NoError(t, err)
	assert.NotContains(t, friends, "alice")
	crushes, err := n.Crushes("bob")
	require.NoError(t, err)
	assert.NotContains(t, crushes, "alice")

	// The global queue purge clears even unrelated queues.
	_, err = n.ReadNotice(carol)
	assert.ErrorIs(t, err, ErrNoNotices)

	// Membership histories are pruned to surviving communities.
	communities, err := n.CommunitiesOf("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"runners"}, communities)
}

// The slices handed out by the read accessors must be detached from the
// internal state: mutating a result must not leak back in.
func TestListAccessorsReturnDetachedCopies(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")

	require.NoError(t, n.AddFriend(alice, "bob"))
	require.NoError(t, n.AddFriend(bob, "alice"))
	require.NoError(t, n.AddCrush(alice, "bob"))
	require.NoError(t, n.CreateCommunity(alice, "gophers", ""))

	friends, err := n.Friends("alice")
	require.NoError(t, err)
	friends[0] = "mallory"
	friends, err = n.Friends("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, friends)

	crushes, err := n.Crushes("alice")
	require.NoError(t, err)
	crushes[0] = "mallory"
	crushes, err = n.Crushes("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, crushes)

	members, err := n.CommunityMembers("gophers")
	require.NoError(t, err)
	members[0] = "mallory"
	members, err = n.CommunityMembers("gophers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)

	communities, err := n.CommunitiesOf("alice")
	require.NoError(t, err)
	communities[0] = "ghosts"
	communities, err = n.CommunitiesOf("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"gophers"}, communities)
}

// The removal cascade rewrites friend lists in place; concurrent readers
// must never see those writes. Run with -race.
func TestFriends_ConcurrentWithRemoveAccount(t *testing.T) {
	n := newTestNetwork(t, "alice", "bob", "carol")
	alice := openTestSession(t, n, "alice")
	bob := openTestSession(t, n, "bob")
	carol := openTestSession(t, n, "carol")

	require.NoError(t, n.AddFriend(alice, "bob"))
	require.NoError(t, n.AddFriend(bob, "alice"))
	require.NoError(t, n.AddFriend(carol, "bob"))
	require.NoError(t, n.AddFriend(bob, "carol"))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if friends, err := n.Friends("bob"); err == nil {
				_ = strings.Join(friends, ",")
			}
		}
	}()

	require.NoError(t, n.RemoveAccount(alice))

	close(stop)
	wg.Wait()

	friends, err := n.Friends("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, friends)
}

func TestReset(t *testing.T) {
	n := newTestNetwork(t, "alice")
	token := openTestSession(t, n, "alice")

	n.Reset()

	_, err := n.GetAttribute("alice", "name")
	assert.ErrorIs(t, err, ErrUnknownUser)
	_, err = n.ResolveSession(token)
	assert.ErrorIs(t, err, ErrUnknownSession)

	// Logins are reusable after a reset.
	assert.NoError(t, n.CreateUser("alice", "pw", "Alice"))
}
