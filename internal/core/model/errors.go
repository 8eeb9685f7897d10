package model

import "errors"

var (
	// ErrInvalidCoordinate marks a sample whose latitude or longitude is
	// outside the legal range. Such samples are never partially applied.
	ErrInvalidCoordinate = errors.New("latitude or longitude out of range")

	// ErrRateLimited marks a sample that arrived before the minimum update
	// interval elapsed. Callers drop these quietly.
	ErrRateLimited = errors.New("sample arrived before minimum update interval")

	ErrAlreadyRecording = errors.New("route recording already active")
	ErrNotRecording     = errors.New("no active route recording")
	ErrEmptyRoute       = errors.New("route contains no points")

	ErrTrackerNotFound = errors.New("tracker not found")
)
