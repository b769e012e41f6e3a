package social

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/quackstagram/quackstore/pkg/adapters/flatfile"
)

// likeUserSeparator joins the usernames that liked one picture.
const likeUserSeparator = ","

// likeRegistry persists which users liked which picture, one
// "pictureID:user1,user2" line per picture. It exists so a like can be
// deduplicated per user, which the denormalized count on the picture
// record cannot do. Rewritten in full on every change.
type likeRegistry struct {
	path string
	mu   sync.Mutex
}

type likeEntry struct {
	pictureID string
	users     []string
}

// Add records that username liked pictureID. It reports whether the like
// was new; a repeat like leaves the file untouched.
func (l *likeRegistry) Add(pictureID, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readLocked()
	if err != nil {
		return false, err
	}

	found := false
	for i := range entries {
		if entries[i].pictureID != pictureID {
			continue
		}
		found = true
		for _, user := range entries[i].users {
			if user == username {
				return false, nil
			}
		}
		entries[i].users = append(entries[i].users, username)
	}
	if !found {
		entries = append(entries, likeEntry{pictureID: pictureID, users: []string{username}})
	}

	return true, l.writeLocked(entries)
}

// Users returns every username that liked the given picture.
func (l *likeRegistry) Users(pictureID string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readLocked()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.pictureID == pictureID {
			return entry.users, nil
		}
	}
	return nil, nil
}

func (l *likeRegistry) readLocked() ([]likeEntry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
	}

	var entries []likeEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		pictureID, users, ok := strings.Cut(line, edgeSeparator)
		if !ok {
			continue
		}
		entries = append(entries, likeEntry{
			pictureID: pictureID,
			users:     strings.Split(users, likeUserSeparator),
		})
	}
	return entries, nil
}

func (l *likeRegistry) writeLocked(entries []likeEntry) error {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry.pictureID)
		b.WriteString(edgeSeparator)
		b.WriteString(strings.Join(entry.users, likeUserSeparator))
		b.WriteByte('\n')
	}

	if err := flatfile.WriteFileAtomic(l.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", l.path, err)
	}
	return nil
}
