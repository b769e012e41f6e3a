package models_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quackstagram/quackstore/pkg/core"
	"github.com/quackstagram/quackstore/pkg/models"
)

func TestParseUser(t *testing.T) {
	t.Run("Round Trips All Fields", func(t *testing.T) {
		original := &models.User{
			Username:       "ada",
			Password:       "secret",
			Bio:            "loves punch cards, and commas",
			Passcode:       "4242",
			Following:      []string{"bob", "carol"},
			FollowersCount: 12,
			PostsCount:     3,
		}

		parsed, err := models.ParseUser(original.Serialize())
		if err != nil {
			t.Fatalf("ParseUser failed: %v", err)
		}

		if !parsed.IsIDEqualTo(original) {
			t.Error("identity lost in round trip")
		}
		if !reflect.DeepEqual(parsed, original) {
			t.Errorf("round trip mismatch: got %+v, want %+v", parsed, original)
		}
	})

	t.Run("Empty Bio And Following Survive", func(t *testing.T) {
		original := models.NewUser("bob", "hunter2", "")

		parsed, err := models.ParseUser(original.Serialize())
		if err != nil {
			t.Fatalf("ParseUser failed: %v", err)
		}

		if parsed.Bio != "" {
			t.Errorf("expected empty bio, got %q", parsed.Bio)
		}
		if len(parsed.Following) != 0 {
			t.Errorf("expected empty following list, got %v", parsed.Following)
		}
		if parsed.Passcode != models.NoPasscode {
			t.Errorf("expected passcode sentinel %q, got %q", models.NoPasscode, parsed.Passcode)
		}
	})

	t.Run("Wrong Arity Raises ParseError", func(t *testing.T) {
		_, err := models.ParseUser([]string{"ada", "secret"})
		if err == nil {
			t.Fatal("expected error for short field array")
		}

		var parseErr *core.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *core.ParseError, got %T: %v", err, err)
		}
		if parseErr.Want != 7 {
			t.Errorf("expected want=7, got %d", parseErr.Want)
		}
	})

	t.Run("Bad Count Field Fails", func(t *testing.T) {
		_, err := models.ParseUser([]string{"ada", "secret", "", "0", "", "twelve", "3"})
		if err == nil {
			t.Error("expected error for non-numeric followers count")
		}
	})
}

func TestUserFollow(t *testing.T) {
	ada := models.NewUser("ada", "secret", "")
	bob := models.NewUser("bob", "hunter2", "")

	t.Run("Adds Target Once", func(t *testing.T) {
		ada.Follow(bob)
		ada.Follow(bob)

		if got := ada.FollowingCount(); got != 1 {
			t.Errorf("expected 1 followed user, got %d", got)
		}
		if !ada.FollowsUser(bob) {
			t.Error("expected ada to follow bob")
		}
	})

	t.Run("Ignores Self", func(t *testing.T) {
		before := ada.FollowingCount()
		ada.Follow(ada)

		if got := ada.FollowingCount(); got != before {
			t.Errorf("following count changed on self-follow: %d -> %d", before, got)
		}
	})
}

func TestUserCredentials(t *testing.T) {
	user := &models.User{Username: "ada", Password: "secret", Passcode: "4242"}

	if !user.PasswordEquals("secret") || user.PasswordEquals("wrong") {
		t.Error("password comparison broken")
	}
	if !user.PasscodeEquals("4242") || user.PasscodeEquals("0000") {
		t.Error("passcode comparison broken")
	}
	if !user.HasPasscode() {
		t.Error("expected user to have a passcode")
	}
	if models.NewUser("bob", "x", "").HasPasscode() {
		t.Error("expected new user to have no passcode")
	}
}
