package core

import (
	"errors"
	"fmt"
)

// Every validation failure maps to exactly one of these kinds. Operations
// never mutate state before their failing check, so a returned error means
// the system is unchanged. Callers match with errors.Is.
var (
	ErrInvalidLogin            = errors.New("invalid login")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrDuplicateAccount        = errors.New("an account with this login already exists")
	ErrInvalidCredentials      = errors.New("invalid login or password")
	ErrUnknownSession          = errors.New("unknown session")
	ErrUnknownUser             = errors.New("user not registered")
	ErrAttributeNotSet         = errors.New("attribute not set")
	ErrSelfReferenceNotAllowed = errors.New("user cannot reference themselves")
	ErrForbiddenByEnmity       = errors.New("forbidden by enmity")
	ErrAlreadyFriends          = errors.New("user is already a friend")
	ErrInviteAlreadyPending    = errors.New("friend invite already pending acceptance")
	ErrAlreadyFan              = errors.New("user is already an idol")
	ErrAlreadyCrush            = errors.New("user is already a crush")
	ErrAlreadyEnemy            = errors.New("user is already an enemy")
	ErrDuplicateCommunity      = errors.New("a community with this name already exists")
	ErrUnknownCommunity        = errors.New("community does not exist")
	ErrAlreadyMember           = errors.New("user is already a member of this community")
	ErrNoNotices               = errors.New("no notices available")
	ErrNoMessages              = errors.New("no messages available")
)

// enmityError carries the enemy's display name so the caller-visible message
// reads "<name> is your enemy." while still matching ErrForbiddenByEnmity.
func enmityError(displayName string) error {
	return fmt.Errorf("%s is your enemy: %w", displayName, ErrForbiddenByEnmity)
}
