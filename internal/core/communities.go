package core

// Community is a named group with one owner and an insertion-ordered member
// set. The owner is the first member.
type Community struct {
	Name        string
	Description string
	Owner       string
	Members     []string
}

func (c *Community) HasMember(login string) bool {
	for _, m := range c.Members {
		if m == login {
			return true
		}
	}
	return false
}

// CommunityRegistry owns all communities plus each user's membership
// history. The history only grows while a community exists; the account
// removal cascade prunes entries whose community is gone.
type CommunityRegistry struct {
	dir         *UserDirectory
	communities map[string]*Community
	history     map[string][]string
}

func NewCommunityRegistry(dir *UserDirectory) *CommunityRegistry {
	r := &CommunityRegistry{dir: dir}
	r.reset()
	return r
}

func (r *CommunityRegistry) reset() {
	r.communities = make(map[string]*Community)
	r.history = make(map[string][]string)
}

// Create registers a community owned by the given login, auto-joining the
// owner as first member.
func (r *CommunityRegistry) Create(owner, name, description string) error {
	if _, ok := r.communities[name]; ok {
		return ErrDuplicateCommunity
	}
	r.communities[name] = &Community{
		Name:        name,
		Description: description,
		Owner:       owner,
		Members:     []string{owner},
	}
	r.recordMembership(owner, name)
	return nil
}

func (r *CommunityRegistry) Get(name string) (*Community, error) {
	c, ok := r.communities[name]
	if !ok {
		return nil, ErrUnknownCommunity
	}
	return c, nil
}

func (r *CommunityRegistry) Join(login, name string) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}
	if c.HasMember(login) {
		return ErrAlreadyMember
	}
	c.Members = append(c.Members, login)
	r.recordMembership(login, name)
	return nil
}

// MembershipsOf returns the login's community membership history in join
// order.
func (r *CommunityRegistry) MembershipsOf(login string) []string {
	return r.history[login]
}

func (r *CommunityRegistry) recordMembership(login, name string) {
	for _, n := range r.history[login] {
		if n == name {
			return
		}
	}
	r.history[login] = append(r.history[login], name)
}

// DropOwner deletes every community the login owns. Members lose those
// communities without individual notification.
func (r *CommunityRegistry) DropOwner(login string) {
	for name, c := range r.communities {
		if c.Owner == login {
			delete(r.communities, name)
		}
	}
}

// PruneHistory rewrites a user's membership history to only communities that
// still exist.
func (r *CommunityRegistry) PruneHistory(login string) {
	var kept []string
	for _, name := range r.history[login] {
		if _, ok := r.communities[name]; ok {
			kept = append(kept, name)
		}
	}
	r.history[login] = kept
}

// DropUser forgets the login's own history. Member lists of communities the
// login did not own are left untouched, matching the historical cascade.
func (r *CommunityRegistry) DropUser(login string) {
	delete(r.history, login)
}

func (r *CommunityRegistry) Clear() {
	r.reset()
}
