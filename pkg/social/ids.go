package social

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewPictureID derives a post ID from the upload time, as a unix-second
// string. exists reports whether
// an ID is already taken; on a same-second collision the ID falls back to
// a random UUID so uniqueness holds by construction rather than being
// detected at write time.
func NewPictureID(now time.Time, exists func(id string) bool) string {
	id := strconv.FormatInt(now.Unix(), 10)
	if exists == nil || !exists(id) {
		return id
	}
	return uuid.NewString()
}
