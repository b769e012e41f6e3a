package social

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// edgeSeparator joins the two usernames of a follower edge. One of the ad
// hoc flat-file formats of the broader data directory, distinct from the
// record format of the tables.
const edgeSeparator = ":"

// followerEdges persists follower relationships, one "follower:followed"
// pair per line, append-only. Duplicate edges are filtered on write.
type followerEdges struct {
	path string
	mu   sync.Mutex
}

// Add appends the edge unless it is already present. It reports whether a
// new edge was written.
func (f *followerEdges) Add(follower, followed string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	if err != nil {
		return false, err
	}

	edge := follower + edgeSeparator + followed
	for _, line := range lines {
		if line == edge {
			return false, nil
		}
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(edge + "\n"); err != nil {
		return false, fmt.Errorf("failed to append to %s: %w", f.path, err)
	}
	return true, nil
}

// Followers returns every username following the given user.
func (f *followerEdges) Followers(username string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	if err != nil {
		return nil, err
	}

	var followers []string
	for _, line := range lines {
		follower, followed, ok := strings.Cut(line, edgeSeparator)
		if ok && followed == username {
			followers = append(followers, follower)
		}
	}
	return followers, nil
}

// Following returns every username the given user follows.
func (f *followerEdges) Following(username string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	if err != nil {
		return nil, err
	}

	var following []string
	for _, line := range lines {
		follower, followed, ok := strings.Cut(line, edgeSeparator)
		if ok && follower == username {
			following = append(following, followed)
		}
	}
	return following, nil
}

func (f *followerEdges) readLocked() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
