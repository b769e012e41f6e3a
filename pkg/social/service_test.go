package social_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quackstagram/quackstore/pkg/core"
	"github.com/quackstagram/quackstore/pkg/models"
	"github.com/quackstagram/quackstore/pkg/social"
)

func setupService(t *testing.T) (*social.Service, string) {
	t.Helper()

	cfg := social.DefaultConfig()
	cfg.DataDir = t.TempDir()

	svc := social.NewService(cfg, nil)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc, cfg.DataDir
}

func seedUsers(t *testing.T, svc *social.Service, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		_, err := svc.CreateUser(context.Background(), username, "pw-"+username, "")
		require.NoError(t, err)
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "ada", "secret", "first!")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, models.NoPasscode, user.Passcode)

	_, err = svc.CreateUser(ctx, "ada", "other", "")
	assert.ErrorIs(t, err, social.ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	seedUsers(t, svc, "ada")

	user, err := svc.Authenticate(ctx, "ada", "pw-ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	_, err = svc.Authenticate(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, social.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, social.ErrInvalidCredentials)
}

func TestUserLookup(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	seedUsers(t, svc, "ada", "bob")

	user, err := svc.User(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = svc.User(ctx, "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username, "newest sign-up first")
}

func TestCreatePicture(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	seedUsers(t, svc, "ada")

	picture, err := svc.CreatePicture(ctx, "ada", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, picture.ID)
	assert.Equal(t, 0, picture.LikesCount)

	user, err := svc.User(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 1, user.PostsCount)

	_, err = svc.CreatePicture(ctx, "ghost", "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPicturesByOwner(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	seedUsers(t, svc, "ada", "bob")

	adaPic, err := svc.CreatePicture(ctx, "ada", "mine")
	require.NoError(t, err)
	_, err = svc.CreatePicture(ctx, "bob", "also mine")
	require.NoError(t, err)

	adas, err := svc.Pictures(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, adas, 1)
	assert.Equal(t, adaPic.ID, adas[0].ID)

	all, err := svc.Pictures(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLikePicture(t *testing.T) {
	t.Run("Creates Notification And Counts Like", func(t *testing.T) {
		svc, _ := setupService(t)
		ctx := context.Background()
		seedUsers(t, svc, "ada", "bob")

		picture, err := svc.CreatePicture(ctx, "ada", "hello")
		require.NoError(t, err)

		require.NoError(t, svc.LikePicture(ctx, "bob", picture.ID))

		liked, err := svc.Picture(ctx, picture.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, liked.LikesCount)

		notifications, err := svc.Notifications(ctx, "ada")
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, "bob", notifications[0].LikedBy)
		assert.Equal(t, picture.ID, notifications[0].PictureID)

		likers, err := svc.Likes(picture.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, likers)
	})

	t.Run("Repeat Like Is A No-Op", func(t *testing.T) {
		svc, _ := setupService(t)
		ctx := context.Background()
		seedUsers(t, svc, "ada", "bob")

		picture, err := svc.CreatePicture(ctx, "ada", "hello")
		require.NoError(t, err)

		require.NoError(t, svc.LikePicture(ctx, "bob", picture.ID))
		require.NoError(t, svc.LikePicture(ctx, "bob", picture.ID))

		liked, err := svc.Picture(ctx, picture.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, liked.LikesCount)

		notifications, err := svc.Notifications(ctx, "ada")
		require.NoError(t, err)
		assert.Len(t, notifications, 1)
	})

	t.Run("Self-Like Records No Notification", func(t *testing.T) {
		svc, _ := setupService(t)
		ctx := context.Background()
		seedUsers(t, svc, "ada")

		picture, err := svc.CreatePicture(ctx, "ada", "hello")
		require.NoError(t, err)

		require.NoError(t, svc.LikePicture(ctx, "ada", picture.ID))

		liked, err := svc.Picture(ctx, picture.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, liked.LikesCount)

		notifications, err := svc.Notifications(ctx, "ada")
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})

	t.Run("Dangling Picture Is NotFound", func(t *testing.T) {
		svc, _ := setupService(t)
		ctx := context.Background()
		seedUsers(t, svc, "bob")

		err := svc.LikePicture(ctx, "bob", "no-such-picture")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	// Two notifications for the same recipient stay two lines on disk.
	// The append-only flag on Notification is the only thing keeping them
	// apart, because identity is recipient-only.
	t.Run("Same Recipient Keeps Every Notification", func(t *testing.T) {
		svc, dir := setupService(t)
		ctx := context.Background()
		seedUsers(t, svc, "ada", "bob", "carol")

		picture, err := svc.CreatePicture(ctx, "ada", "hello")
		require.NoError(t, err)

		require.NoError(t, svc.LikePicture(ctx, "bob", picture.ID))
		require.NoError(t, svc.LikePicture(ctx, "carol", picture.ID))

		data, err := os.ReadFile(filepath.Join(dir, "notifications.txt"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		assert.Len(t, lines, 2)

		notifications, err := svc.Notifications(ctx, "ada")
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})
}

func TestFollow(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()
	seedUsers(t, svc, "ada", "bob")

	require.NoError(t, svc.Follow(ctx, "ada", "bob"))

	ada, err := svc.User(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, ada.Following)

	bob, err := svc.User(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.FollowersCount)

	// Repeat and self-follows change nothing.
	require.NoError(t, svc.Follow(ctx, "ada", "bob"))
	require.NoError(t, svc.Follow(ctx, "ada", "ada"))

	bob, err = svc.User(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.FollowersCount)

	data, err := os.ReadFile(filepath.Join(dir, "followers.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ada:bob\n", string(data))

	followers, err := svc.Followers("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, followers)

	following, err := svc.Following("ada")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, following)
}

func TestClearBio(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "ada", "secret", "a bio to erase")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "bob", "secret", "keep me")
	require.NoError(t, err)

	require.NoError(t, svc.ClearBio(ctx, "ada"))

	ada, err := svc.User(ctx, "ada")
	require.NoError(t, err)
	assert.Empty(t, ada.Bio)

	bob, err := svc.User(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "keep me", bob.Bio)
}
