package service

import "errors"

// Sentinel kinds for scoreboard errors, in addition to model.ErrInvalidArgument.
var (
	ErrMatchNotInProgress = errors.New("match not in progress")
)
