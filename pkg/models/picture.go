package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/quackstagram/quackstore/pkg/core"
)

const pictureFieldCount = 5

// Picture represents an uploaded post. It is also the subject half of the
// like notification mechanism: observers registered on a Picture instance
// are told synchronously whenever it receives a like. The observer list is
// in-memory only and dies with the instance.
type Picture struct {
	ID         string // identity, opaque unique token
	Owner      string // references User.Username by value, unenforced
	Caption    string
	Date       string // core.TimeFormat, UTC
	LikesCount int

	observers []core.Observer
}

// NewPicture creates a post with zero likes, stamped at takenAt.
func NewPicture(id, owner, caption string, takenAt time.Time) *Picture {
	return &Picture{
		ID:      id,
		Owner:   owner,
		Caption: caption,
		Date:    takenAt.UTC().Format(core.TimeFormat),
	}
}

// ParsePicture reconstructs a Picture from its serialized fields.
func ParsePicture(fields []string) (*Picture, error) {
	if len(fields) != pictureFieldCount {
		return nil, core.NewParseError("pictures", pictureFieldCount, fields)
	}

	likes, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("pictures: invalid likes count %q: %w", fields[4], err)
	}

	return &Picture{
		ID:         fields[0],
		Owner:      fields[1],
		Caption:    fields[2],
		Date:       fields[3],
		LikesCount: likes,
	}, nil
}

// Serialize implements core.Model.
func (p *Picture) Serialize() []string {
	return []string{p.ID, p.Owner, p.Caption, p.Date, strconv.Itoa(p.LikesCount)}
}

// IsUpdatable implements core.Model. Pictures are updated in place as
// their like count changes.
func (p *Picture) IsUpdatable() bool { return true }

// IsIDEqualTo implements core.Model.
func (p *Picture) IsIDEqualTo(other *Picture) bool {
	return p.ID == other.ID
}

// AddLike increments the like counter by one and fans the change out to
// every registered observer.
func (p *Picture) AddLike() error {
	p.LikesCount++
	return p.NotifyObservers()
}

// AddObserver implements core.Subject.
func (p *Picture) AddObserver(o core.Observer) {
	p.observers = append(p.observers, o)
}

// RemoveObserver implements core.Subject. Unknown observers are ignored.
func (p *Picture) RemoveObserver(o core.Observer) {
	for i, registered := range p.observers {
		if registered == o {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// NotifyObservers implements core.Subject. Observers run in registration
// order; a failing observer does not stop the rest, and all failures come
// back joined.
func (p *Picture) NotifyObservers() error {
	var errs []error
	for _, o := range p.observers {
		if err := o.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Path returns the upload location of the image file.
func (p *Picture) Path() string {
	return "img/uploaded/" + p.ID + ".png"
}
