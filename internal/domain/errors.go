package domain

import "errors"

var (
	ErrInvalidDuration  = errors.New("block duration must be positive")
	ErrNoSites          = errors.New("no sites to block")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSessionActive    = errors.New("a blocking session is already active")
)
