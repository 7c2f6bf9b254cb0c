package bandit

import "errors"

var (
	// ErrConfiguration covers invalid parameters: epsilon outside [0,1],
	// empty context or action sets, missing collaborators, non-finite rewards.
	ErrConfiguration = errors.New("bandit: invalid configuration")

	ErrContextNotFound = errors.New("bandit: context not found")
	ErrActionNotFound  = errors.New("bandit: action not found")

	// ErrDeadlineExceeded is returned with the partial table when Config.Deadline elapses.
	ErrDeadlineExceeded = errors.New("bandit: run deadline exceeded")
)
