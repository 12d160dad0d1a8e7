package model

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPaid,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// transitions lists every legal move of the booking state machine.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusCompleted},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !slices.Contains(statuses, status) {
		return "", fmt.Errorf("unknown booking status %q", value)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsDates reports whether a booking in this status belongs to the effective unavailable set.
func (s Status) HoldsDates() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusPaid
}

// RequiresReason reports whether moving into s needs a free-text reason.
func (s Status) RequiresReason() bool {
	return s == StatusRejected || s == StatusCancelled
}

// HoldingStatuses returns the statuses that keep a booking's dates unavailable.
func HoldingStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed), string(StatusPaid)}
}
