package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by reference lookups when no row matches.
var ErrNotFound = errors.New("not found")

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

type Employee struct {
	ID         int64
	BadgeCode  string
	FullName   string
	Position   string
	Department string
	Phone      string
}

type Turnstile struct {
	ID       int64
	Name     string
	Location string
}

// ReferenceStore is the read-only employee/turnstile catalog consulted per
// swipe. Lookups are exact and case-sensitive; nothing on the decision path
// mutates it.
type ReferenceStore interface {
	EmployeeByBadge(ctx context.Context, badgeCode string) (Employee, error)
	TurnstileByID(ctx context.Context, id int64) (Turnstile, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}
