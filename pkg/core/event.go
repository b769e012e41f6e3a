package core

// EventType represents the kind of change observed in the data directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to one of the backing files.
type Event struct {
	Type      EventType
	Name      string // file name relative to the data directory
	Timestamp int64  // Unix timestamp
}
