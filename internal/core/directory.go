package core

import "strings"

// AttributeName is the profile attribute that aliases the display name.
const AttributeName = "name"

// User is a single account. Owned exclusively by the UserDirectory; other
// components refer to users by login only.
type User struct {
	Login      string
	Password   string
	Name       string
	Attributes map[string]string
}

// UserDirectory owns all user records and enforces login uniqueness.
// Iteration order is account creation order, which listFans and snapshot
// export rely on.
type UserDirectory struct {
	users map[string]*User
	order []string
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]*User)}
}

func (d *UserDirectory) Create(login, password, name string) error {
	if strings.TrimSpace(login) == "" {
		return ErrInvalidLogin
	}
	if strings.TrimSpace(password) == "" {
		return ErrInvalidPassword
	}
	if _, ok := d.users[login]; ok {
		return ErrDuplicateAccount
	}
	d.users[login] = &User{
		Login:      login,
		Password:   password,
		Name:       name,
		Attributes: make(map[string]string),
	}
	d.order = append(d.order, login)
	return nil
}

// Authenticate deliberately collapses "unknown login" and "wrong password"
// into one error so callers cannot probe for account existence.
func (d *UserDirectory) Authenticate(login, password string) (*User, error) {
	if strings.TrimSpace(login) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}
	u, ok := d.users[login]
	if !ok || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (d *UserDirectory) Get(login string) (*User, error) {
	u, ok := d.users[login]
	if !ok {
		return nil, ErrUnknownUser
	}
	return u, nil
}

func (d *UserDirectory) Contains(login string) bool {
	_, ok := d.users[login]
	return ok
}

func (d *UserDirectory) Attribute(login, name string) (string, error) {
	u, err := d.Get(login)
	if err != nil {
		return "", err
	}
	if name == AttributeName {
		return u.Name, nil
	}
	v, ok := u.Attributes[name]
	if !ok {
		return "", ErrAttributeNotSet
	}
	return v, nil
}

// SetAttribute upserts; the "name" alias updates the display name instead of
// the generic map.
func (d *UserDirectory) SetAttribute(login, name, value string) error {
	u, err := d.Get(login)
	if err != nil {
		return err
	}
	if name == AttributeName {
		u.Name = value
		return nil
	}
	u.Attributes[name] = value
	return nil
}

// Logins returns all logins in account creation order.
func (d *UserDirectory) Logins() []string {
	return d.order
}

// Remove hard-deletes an account. Used only by the removal cascade.
func (d *UserDirectory) Remove(login string) {
	delete(d.users, login)
	for i, l := range d.order {
		if l == login {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *UserDirectory) Clear() {
	d.users = make(map[string]*User)
	d.order = nil
}
