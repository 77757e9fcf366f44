package assets

import "errors"

// Lifecycle misuse faults. Managers panic with errors wrapping these values;
// they indicate a bug in the owning form, not a user-facing condition.
var (
	ErrReleased      = errors.New("assets: manager already released")
	ErrAlreadySeeded = errors.New("assets: manager already seeded")
)
