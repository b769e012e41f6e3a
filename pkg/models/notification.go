package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/quackstagram/quackstore/pkg/core"
)

const notificationFieldCount = 4

// Notification records that LikedBy liked one of Username's pictures.
//
// Its identity is just the recipient username, so any two notifications
// for the same recipient compare as "the same record". The store keeps
// them apart only because IsUpdatable returns false; flipping that flag
// would collapse a user's whole notification history into a single line.
// That coupling is pinned by a test rather than redefined here.
type Notification struct {
	Username  string // recipient, whose picture was liked
	LikedBy   string
	PictureID string
	Date      string // core.TimeFormat, UTC

	refresh func()
}

// NewNotification creates a notification stamped at the given time.
func NewNotification(username, likedBy, pictureID string, at time.Time) *Notification {
	return &Notification{
		Username:  username,
		LikedBy:   likedBy,
		PictureID: pictureID,
		Date:      at.UTC().Format(core.TimeFormat),
	}
}

// ParseNotification reconstructs a Notification from its serialized fields.
func ParseNotification(fields []string) (*Notification, error) {
	if len(fields) != notificationFieldCount {
		return nil, core.NewParseError("notifications", notificationFieldCount, fields)
	}
	return &Notification{
		Username:  fields[0],
		LikedBy:   fields[1],
		PictureID: fields[2],
		Date:      fields[3],
	}, nil
}

// Serialize implements core.Model.
func (n *Notification) Serialize() []string {
	return []string{n.Username, n.LikedBy, n.PictureID, n.Date}
}

// IsUpdatable implements core.Model. Notifications are append-only; see
// the identity caveat on the type.
func (n *Notification) IsUpdatable() bool { return false }

// IsIDEqualTo implements core.Model.
func (n *Notification) IsIDEqualTo(other *Notification) bool {
	return n.Username == other.Username
}

// SetRefresh registers a hook invoked on every Update. The persistence
// layer has no display dependency; a UI surface wires itself in here.
func (n *Notification) SetRefresh(fn func()) {
	n.refresh = fn
}

// Update implements core.Observer.
func (n *Notification) Update() error {
	if n.refresh != nil {
		n.refresh()
	}
	return nil
}

// Message renders the human-readable notification line.
func (n *Notification) Message() string {
	return n.MessageAt(time.Now().UTC())
}

// MessageAt renders the notification line relative to the given time.
func (n *Notification) MessageAt(now time.Time) string {
	return fmt.Sprintf("%s liked your picture - %s ago", n.LikedBy, elapsed(n.Date, now))
}

// elapsed renders the days-and-minutes wording of the notification line.
func elapsed(timestamp string, now time.Time) string {
	then, err := time.Parse(core.TimeFormat, timestamp)
	if err != nil {
		return timestamp
	}

	since := now.Sub(then)
	days := int(since.Hours() / 24)
	minutes := int(since.Minutes()) % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d day", days)
		if days > 1 {
			b.WriteString("s")
		}
	}
	if minutes > 0 {
		if days > 0 {
			b.WriteString(" and ")
		}
		fmt.Fprintf(&b, "%d minute", minutes)
		if minutes > 1 {
			b.WriteString("s")
		}
	}
	return b.String()
}
