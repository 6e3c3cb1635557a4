package service

import (
	"context"
	"errors"
	"sync"
)

// DeleteState is the lifecycle of the delete-confirmation dialog.
type DeleteState string

const (
	DeleteIdle           DeleteState = "idle"
	DeleteConfirmPending DeleteState = "confirm_pending"
	DeleteInFlight       DeleteState = "deleting"
)

var (
	ErrDeleteAlreadyStaged = errors.New("a delete is already awaiting confirmation")
	ErrNothingStaged       = errors.New("no delete is awaiting confirmation")
	ErrDeleteInFlight      = errors.New("delete already in progress")
)

// DeleteFlow models one confirmation dialog: Idle until a target is staged,
// ConfirmPending while the dialog is open, Deleting while the remote call
// runs. A failed call reopens the dialog rather than discarding the target.
type DeleteFlow struct {
	mu          sync.Mutex
	state       DeleteState
	targetID    string
	targetTitle string
}

func NewDeleteFlow() *DeleteFlow {
	return &DeleteFlow{state: DeleteIdle}
}

// Request stages a target and opens the dialog.
func (f *DeleteFlow) Request(id, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case DeleteInFlight:
		return ErrDeleteInFlight
	case DeleteConfirmPending:
		return ErrDeleteAlreadyStaged
	}

	f.state = DeleteConfirmPending
	f.targetID = id
	f.targetTitle = title
	return nil
}

// Cancel closes the dialog and discards the pending target.
func (f *DeleteFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != DeleteConfirmPending {
		return
	}

	f.state = DeleteIdle
	f.targetID = ""
	f.targetTitle = ""
}

// Pending reports the staged target while the dialog is open.
func (f *DeleteFlow) Pending() (id, title string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != DeleteConfirmPending {
		return "", "", false
	}
	return f.targetID, f.targetTitle, true
}

// State returns the current dialog state.
func (f *DeleteFlow) State() DeleteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Confirm runs the deletion. On success the flow returns to Idle; on failure
// the dialog stays open with the target intact so the user can retry or
// cancel.
func (f *DeleteFlow) Confirm(ctx context.Context, del func(ctx context.Context, id string) error) error {
	f.mu.Lock()
	if f.state != DeleteConfirmPending {
		err := ErrNothingStaged
		if f.state == DeleteInFlight {
			err = ErrDeleteInFlight
		}
		f.mu.Unlock()
		return err
	}
	f.state = DeleteInFlight
	id := f.targetID
	f.mu.Unlock()

	err := del(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = DeleteConfirmPending
		return err
	}

	f.state = DeleteIdle
	f.targetID = ""
	f.targetTitle = ""
	return nil
}
