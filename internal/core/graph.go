package core

// RelationshipGraph holds every per-user directed relation: the friendship
// state machine (pending invite -> confirmed), idol, crush and enemy sets.
// Friend and crush listings preserve insertion order, so those live in
// slices; invites and enemies are only ever membership-tested.
type RelationshipGraph struct {
	dir     *UserDirectory
	friends map[string][]string
	invites map[string]map[string]struct{}
	idols   map[string][]string
	crushes map[string][]string
	enemies map[string]map[string]struct{}
}

func NewRelationshipGraph(dir *UserDirectory) *RelationshipGraph {
	g := &RelationshipGraph{dir: dir}
	g.reset()
	return g
}

func (g *RelationshipGraph) reset() {
	g.friends = make(map[string][]string)
	g.invites = make(map[string]map[string]struct{})
	g.idols = make(map[string][]string)
	g.crushes = make(map[string][]string)
	g.enemies = make(map[string]map[string]struct{})
}

// RequestFriend advances the (requester, target) pair through the friendship
// state machine. A request against an inverse pending invite acts as
// acceptance and confirms both sides.
//
// The enmity veto is directional: only target-holds-requester-as-enemy
// blocks the request. The other direction is deliberately not checked.
func (g *RelationshipGraph) RequestFriend(requester, target string) error {
	if requester == target {
		return ErrSelfReferenceNotAllowed
	}
	tu, err := g.dir.Get(target)
	if err != nil {
		return err
	}
	if g.IsEnemy(target, requester) {
		return enmityError(tu.Name)
	}
	if g.AreFriends(requester, target) {
		return ErrAlreadyFriends
	}
	if g.hasInvite(target, requester) {
		return ErrInviteAlreadyPending
	}
	if g.hasInvite(requester, target) {
		delete(g.invites[requester], target)
		g.confirm(requester, target)
		g.confirm(target, requester)
		return nil
	}
	g.addInvite(target, requester)
	return nil
}

func (g *RelationshipGraph) confirm(login, friend string) {
	for _, f := range g.friends[login] {
		if f == friend {
			return
		}
	}
	g.friends[login] = append(g.friends[login], friend)
}

func (g *RelationshipGraph) addInvite(to, from string) {
	if g.invites[to] == nil {
		g.invites[to] = make(map[string]struct{})
	}
	g.invites[to][from] = struct{}{}
}

func (g *RelationshipGraph) hasInvite(to, from string) bool {
	_, ok := g.invites[to][from]
	return ok
}

// AreFriends reports whether the pair is confirmed. Confirmation is written
// symmetrically, so checking one side suffices.
func (g *RelationshipGraph) AreFriends(a, b string) bool {
	for _, f := range g.friends[a] {
		if f == b {
			return true
		}
	}
	return false
}

// Friends returns the login's confirmed friends in confirmation order.
func (g *RelationshipGraph) Friends(login string) []string {
	return g.friends[login]
}

func (g *RelationshipGraph) AddIdol(subject, idol string) error {
	if subject == idol {
		return ErrSelfReferenceNotAllowed
	}
	iu, err := g.dir.Get(idol)
	if err != nil {
		return err
	}
	if g.IsEnemy(idol, subject) {
		return enmityError(iu.Name)
	}
	if g.IsFan(subject, idol) {
		return ErrAlreadyFan
	}
	g.idols[subject] = append(g.idols[subject], idol)
	return nil
}

// IsFan reports whether login admires idol.
func (g *RelationshipGraph) IsFan(login, idol string) bool {
	for _, i := range g.idols[login] {
		if i == idol {
			return true
		}
	}
	return false
}

// Fans is derived, not stored: it scans the directory in creation order for
// users whose idol set contains the given login.
func (g *RelationshipGraph) Fans(idol string) []string {
	var fans []string
	for _, login := range g.dir.Logins() {
		if g.IsFan(login, idol) {
			fans = append(fans, login)
		}
	}
	return fans
}

// AddCrush records the directed crush and reports whether this call made the
// pair mutual, so the caller can deliver the one-time match notices. The
// duplicate check guarantees the transition into the mutual state happens at
// most once per pair.
func (g *RelationshipGraph) AddCrush(subject, object string) (mutual bool, err error) {
	if subject == object {
		return false, ErrSelfReferenceNotAllowed
	}
	ou, err := g.dir.Get(object)
	if err != nil {
		return false, err
	}
	if g.IsEnemy(object, subject) {
		return false, enmityError(ou.Name)
	}
	if g.IsCrush(subject, object) {
		return false, ErrAlreadyCrush
	}
	g.crushes[subject] = append(g.crushes[subject], object)
	return g.IsCrush(object, subject), nil
}

func (g *RelationshipGraph) IsCrush(login, other string) bool {
	for _, c := range g.crushes[login] {
		if c == other {
			return true
		}
	}
	return false
}

// Crushes returns the login's crushes in insertion order.
func (g *RelationshipGraph) Crushes(login string) []string {
	return g.crushes[login]
}

// AddEnemy has no enmity veto of its own: it is the relation that defines
// enmity.
func (g *RelationshipGraph) AddEnemy(subject, enemy string) error {
	if subject == enemy {
		return ErrSelfReferenceNotAllowed
	}
	if !g.dir.Contains(enemy) {
		return ErrUnknownUser
	}
	if g.IsEnemy(subject, enemy) {
		return ErrAlreadyEnemy
	}
	if g.enemies[subject] == nil {
		g.enemies[subject] = make(map[string]struct{})
	}
	g.enemies[subject][enemy] = struct{}{}
	return nil
}

// IsEnemy reports whether owner has marked other as an enemy.
func (g *RelationshipGraph) IsEnemy(owner, other string) bool {
	_, ok := g.enemies[owner][other]
	return ok
}

// DropUser removes the login's own relation state and prunes it from every
// remaining user's friend and crush lists. Idol, enemy and invite entries
// pointing at the removed login are left behind, matching the historical
// cascade.
func (g *RelationshipGraph) DropUser(login string) {
	delete(g.friends, login)
	delete(g.invites, login)
	delete(g.idols, login)
	delete(g.crushes, login)
	delete(g.enemies, login)
	for l := range g.friends {
		g.friends[l] = removeString(g.friends[l], login)
	}
	for l := range g.crushes {
		g.crushes[l] = removeString(g.crushes[l], login)
	}
}

func (g *RelationshipGraph) Clear() {
	g.reset()
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
