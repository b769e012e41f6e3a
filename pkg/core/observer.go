package core

// Observer receives change signals from a Subject it registered with.
type Observer interface {
	// Update is called synchronously by the subject on a state change.
	Update() error
}

// Subject is an entity whose state changes can be observed. Observers are
// notified in registration order. Registrations live only as long as the
// subject instance; they are never persisted.
type Subject interface {
	AddObserver(o Observer)
	RemoveObserver(o Observer)

	// NotifyObservers invokes Update on every registered observer. Fan-out
	// is best-effort: every observer runs, and failures are joined into the
	// returned error.
	NotifyObservers() error
}
