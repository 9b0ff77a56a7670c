package engine

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrRewardNotFound = errors.New("reward not found")
)

// AlreadyError marks a rejected toggle: completing a completed task or
// undoing one that is not completed.
type AlreadyError struct {
	TaskID string
	Done   bool
}

func (e AlreadyError) Error() string {
	if e.Done {
		return fmt.Sprintf("task %s is already completed", e.TaskID)
	}
	return fmt.Sprintf("task %s is not completed", e.TaskID)
}

// InsufficientPointsError rejects a redemption before any state is mutated.
type InsufficientPointsError struct {
	Cost      int
	Available int
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("not enough points: need %d, have %d", e.Cost, e.Available)
}

// AlreadyRedeemedError rejects a second redemption of the same reward.
type AlreadyRedeemedError struct {
	RewardID string
}

func (e AlreadyRedeemedError) Error() string {
	return fmt.Sprintf("reward %s has already been redeemed", e.RewardID)
}
