package effects

import "errors"

var (
	// ErrCapacityExceeded is returned by Start when the active effect ceiling is reached.
	ErrCapacityExceeded = errors.New("effects: capacity exceeded")
	// ErrInvalidOwner is returned by Start when the owner is not present in the world.
	ErrInvalidOwner = errors.New("effects: invalid owner")
	// ErrSpawnRejected is returned by worlds that refuse to create an entity.
	ErrSpawnRejected = errors.New("effects: spawn rejected")
	// ErrNilManager is returned by Start on a nil *Manager.
	ErrNilManager = errors.New("effects: nil manager")
)
