package domain

import "time"

type ID string

// Todo belongs to exactly one owner from creation. CompletedAt holds epoch
// milliseconds and is non-nil iff Completed is true.
type Todo struct {
	ID          ID
	OwnerID     string
	Text        string
	Completed   bool
	CompletedAt *int64
	CreatedAt   time.Time
}

// Patch carries the updatable fields; nil means "leave unchanged".
type Patch struct {
	Text      *string
	Completed *bool
}
