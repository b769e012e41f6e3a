package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quackstagram/quackstore/pkg/adapters/flatfile"
	"github.com/quackstagram/quackstore/pkg/core"
	"github.com/quackstagram/quackstore/pkg/models"
)

// Account-level failures surfaced to the sign-up/sign-in callers.
var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service exposes the repository-style operations of the record layer:
// get-by-identity, filtered queries, saves, and the cross-record flows
// (likes with notification fan-out, follows, post creation).
type Service struct {
	cfg    Config
	logger *slog.Logger
	clock  func() time.Time

	users         *flatfile.Table[*models.User]
	pictures      *flatfile.Table[*models.Picture]
	notifications *flatfile.Table[*models.Notification]
	edges         *followerEdges
	likes         *likeRegistry
}

// NewService wires a Service over the data directory described by cfg.
// A nil logger falls back to slog.Default().
func NewService(cfg Config, logger *slog.Logger) *Service {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:           cfg,
		logger:        logger,
		clock:         time.Now,
		users:         flatfile.NewTable(cfg.usersPath(), models.ParseUser, logger),
		pictures:      flatfile.NewTable(cfg.picturesPath(), models.ParsePicture, logger),
		notifications: flatfile.NewTable(cfg.notificationsPath(), models.ParseNotification, logger),
		edges:         &followerEdges{path: cfg.followersPath()},
		likes:         &likeRegistry{path: cfg.likesPath()},
	}
}

// Initialize ensures the data directory exists.
func (s *Service) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config { return s.cfg }

// User returns the account with the given username.
func (s *Service) User(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.Find(ctx, func(u *models.User) bool {
		return u.Username == username
	})
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	return user, nil
}

// Users returns every account, newest sign-up first.
func (s *Service) Users(ctx context.Context) ([]*models.User, error) {
	return s.users.ReadAll(ctx)
}

// SaveUser upserts an account.
func (s *Service) SaveUser(ctx context.Context, user *models.User) error {
	return s.users.Save(ctx, user)
}

// CreateUser signs up a new account. The username must be free.
func (s *Service) CreateUser(ctx context.Context, username, password, bio string) (*models.User, error) {
	if _, err := s.User(ctx, username); err == nil {
		return nil, fmt.Errorf("user %s: %w", username, ErrUserExists)
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	user := models.NewUser(username, password, bio)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "username", username)
	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.User(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.PasswordEquals(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ClearBio empties the bio of the given account, rewriting the users file.
func (s *Service) ClearBio(ctx context.Context, username string) error {
	users, err := s.users.ReadAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if user.Username == username {
			user.Bio = ""
		}
	}
	return s.users.WriteAll(ctx, users)
}

// Picture returns the post with the given ID.
func (s *Service) Picture(ctx context.Context, pictureID string) (*models.Picture, error) {
	picture, err := s.pictures.Find(ctx, func(p *models.Picture) bool {
		return p.ID == pictureID
	})
	if err != nil {
		return nil, fmt.Errorf("picture %s: %w", pictureID, err)
	}
	return picture, nil
}

// Pictures returns posts in file order, newest first. The empty owner
// selects every post.
func (s *Service) Pictures(ctx context.Context, owner string) ([]*models.Picture, error) {
	return s.pictures.Filter(ctx, func(p *models.Picture) bool {
		return owner == "" || p.Owner == owner
	})
}

// SavePicture upserts a post.
func (s *Service) SavePicture(ctx context.Context, picture *models.Picture) error {
	return s.pictures.Save(ctx, picture)
}

// CreatePicture stores a new post for owner and bumps their denormalized
// posts count.
func (s *Service) CreatePicture(ctx context.Context, owner, caption string) (*models.Picture, error) {
	user, err := s.User(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	id := NewPictureID(now, func(id string) bool {
		_, err := s.pictures.Find(ctx, func(p *models.Picture) bool { return p.ID == id })
		return err == nil
	})

	picture := models.NewPicture(id, owner, caption, now)
	if err := s.pictures.Save(ctx, picture); err != nil {
		return nil, err
	}

	user.PostsCount++
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("picture created", "id", id, "owner", owner)
	return picture, nil
}

// Notifications returns every notification addressed to username, newest
// first.
func (s *Service) Notifications(ctx context.Context, username string) ([]*models.Notification, error) {
	return s.notifications.Filter(ctx, func(n *models.Notification) bool {
		return n.Username == username
	})
}

// SaveNotification appends a notification. Notifications are never
// collapsed: the entity is append-only by contract.
func (s *Service) SaveNotification(ctx context.Context, n *models.Notification) error {
	return s.notifications.Save(ctx, n)
}

// LikePicture runs the full like flow: dedupe against the like registry,
// attach a fresh notification as observer, fan the change out, persist
// both records. Liking your own picture counts the like but records no
// notification. A repeat like by the same user is a no-op.
func (s *Service) LikePicture(ctx context.Context, liker, pictureID string) error {
	picture, err := s.Picture(ctx, pictureID)
	if err != nil {
		return err
	}

	added, err := s.likes.Add(pictureID, liker)
	if err != nil {
		return err
	}
	if !added {
		s.logger.Debug("duplicate like ignored", "picture", pictureID, "user", liker)
		return nil
	}

	var notification *models.Notification
	if liker != picture.Owner {
		notification = models.NewNotification(picture.Owner, liker, pictureID, s.clock())
		picture.AddObserver(notification)
	}

	if err := picture.AddLike(); err != nil {
		s.logger.Warn("observer update failed", "picture", pictureID, "error", err)
	}

	if err := s.pictures.Save(ctx, picture); err != nil {
		return err
	}
	if notification != nil {
		if err := s.notifications.Save(ctx, notification); err != nil {
			return err
		}
	}

	s.logger.Info("picture liked", "picture", pictureID, "user", liker)
	return nil
}

// Likes returns every username that liked the given picture.
func (s *Service) Likes(pictureID string) ([]string, error) {
	return s.likes.Users(pictureID)
}

// Follow makes follower follow followed: the follower's following list
// gains the target, the follower edge file gains the pair, and the
// followed account's denormalized followers count goes up. Following
// yourself or an already-followed account is a no-op.
func (s *Service) Follow(ctx context.Context, follower, followed string) error {
	if follower == followed {
		return nil
	}

	followerUser, err := s.User(ctx, follower)
	if err != nil {
		return err
	}
	followedUser, err := s.User(ctx, followed)
	if err != nil {
		return err
	}
	if followerUser.FollowsUser(followedUser) {
		return nil
	}

	followerUser.Follow(followedUser)
	followedUser.FollowersCount++

	if _, err := s.edges.Add(follower, followed); err != nil {
		return err
	}
	if err := s.users.Save(ctx, followerUser); err != nil {
		return err
	}
	return s.users.Save(ctx, followedUser)
}

// Followers returns every username following the given user, from the
// follower edge file.
func (s *Service) Followers(username string) ([]string, error) {
	return s.edges.Followers(username)
}

// Following returns every username the given user follows, from the
// follower edge file.
func (s *Service) Following(username string) ([]string, error) {
	return s.edges.Following(username)
}

// Watch emits change events for the data directory. pattern is a
// doublestar glob matched against file names relative to the data dir;
// empty matches everything. The channel closes when ctx is cancelled.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w := flatfile.NewWatcher(s.cfg.DataDir, pattern, s.logger)
	return w.Start(ctx)
}
