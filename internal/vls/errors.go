package vls

import "errors"

// ErrRecordTooLarge is returned when a requested allocation exceeds one
// frame (spec.md §4.4: "Precondition: size ≤ FRAME_SIZE").
var ErrRecordTooLarge = errors.New("vls: record size exceeds frame size")

// ErrInvalidRecordID is returned by Get when passed a negative record id.
var ErrInvalidRecordID = errors.New("vls: invalid record id")
