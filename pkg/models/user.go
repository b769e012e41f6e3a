// Package models holds the concrete record types of the application:
// accounts, pictures, and like notifications. Each implements the
// core.Model contract and ships a factory that rebuilds it from the
// serialized field sequence.
package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quackstagram/quackstore/pkg/core"
)

const userFieldCount = 7

// NoPasscode is the sentinel stored when an account has no second factor.
const NoPasscode = "0"

// User represents an account: its credentials, profile, the accounts it
// follows, and two denormalized counters. The counters are not derived
// from the following lists and can drift; the file format keeps them as
// independent fields.
type User struct {
	Username       string // identity, unique, case-sensitive
	Password       string // plaintext, as the file format stores it
	Bio            string
	Passcode       string
	Following      []string
	FollowersCount int
	PostsCount     int
}

// NewUser creates an account without a passcode.
func NewUser(username, password, bio string) *User {
	return &User{
		Username: username,
		Password: password,
		Bio:      bio,
		Passcode: NoPasscode,
	}
}

// ParseUser reconstructs a User from its serialized fields.
func ParseUser(fields []string) (*User, error) {
	if len(fields) != userFieldCount {
		return nil, core.NewParseError("users", userFieldCount, fields)
	}

	followers, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("users: invalid followers count %q: %w", fields[5], err)
	}
	posts, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("users: invalid posts count %q: %w", fields[6], err)
	}

	return &User{
		Username:       fields[0],
		Password:       fields[1],
		Bio:            fields[2],
		Passcode:       fields[3],
		Following:      splitList(fields[4]),
		FollowersCount: followers,
		PostsCount:     posts,
	}, nil
}

// splitList parses a ListSeparator-joined field. An empty field is an
// empty list, not a list holding one empty string.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, core.ListSeparator)
}

// Serialize implements core.Model.
func (u *User) Serialize() []string {
	return []string{
		u.Username,
		u.Password,
		u.Bio,
		u.Passcode,
		strings.Join(u.Following, core.ListSeparator),
		strconv.Itoa(u.FollowersCount),
		strconv.Itoa(u.PostsCount),
	}
}

// IsUpdatable implements core.Model. Accounts are updated in place.
func (u *User) IsUpdatable() bool { return true }

// IsIDEqualTo implements core.Model. Accounts are identified by username.
func (u *User) IsIDEqualTo(other *User) bool {
	return u.Username == other.Username
}

// PasswordEquals reports whether the supplied password matches.
func (u *User) PasswordEquals(supplied string) bool {
	return u.Password == supplied
}

// PasscodeEquals reports whether the supplied passcode matches.
func (u *User) PasscodeEquals(supplied string) bool {
	return u.Passcode == supplied
}

// HasPasscode reports whether the account carries a second factor.
func (u *User) HasPasscode() bool {
	return u.Passcode != NoPasscode
}

// FollowsUser reports whether this account already follows target.
func (u *User) FollowsUser(target *User) bool {
	for _, name := range u.Following {
		if name == target.Username {
			return true
		}
	}
	return false
}

// Follow adds target to the following list. Following yourself and
// following an account twice are silent no-ops; the list never holds
// duplicates because this is the only mutation path.
func (u *User) Follow(target *User) {
	if u.IsIDEqualTo(target) {
		return
	}
	if u.FollowsUser(target) {
		return
	}
	u.Following = append(u.Following, target.Username)
}

// FollowingCount returns how many accounts this user follows.
func (u *User) FollowingCount() int { return len(u.Following) }

// ProfileImagePath returns the location of the account's profile image.
func (u *User) ProfileImagePath() string {
	return "img/profile/" + u.Username + ".png"
}
