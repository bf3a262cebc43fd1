package db

import "fmt"

// DuplicateIDError is an error used to encode when duplicate IDs occur
// (used to provide more detailed feedback
// and to use the correct status code)
type DuplicateIDError struct {
	OriginalID string
}

// NewDuplicateIDError constructs a new DuplicateIDError
func NewDuplicateIDError(originalID string) *DuplicateIDError {
	return &DuplicateIDError{
		OriginalID: originalID,
	}
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("given ID '%s' collides with existing IDs in the database",
		e.OriginalID)
}

// NotFoundError is an error used to encode when an ID isn't found
// for Get, Update, and Delete operations
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFoundError constructs a new NotFoundError
func NewNotFoundError(kind string, id string) *NotFoundError {
	return &NotFoundError{
		Kind: kind,
		ID:   id,
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found in the database",
		e.Kind, e.ID)
}

// InvalidStateError is used when an operation does not apply
// to the record's current state, such as re-verifying a technician
type InvalidStateError struct {
	ID     string
	State  string
	Action string
}

// NewInvalidStateError constructs a new InvalidStateError
func NewInvalidStateError(id string, state string, action string) *InvalidStateError {
	return &InvalidStateError{
		ID:     id,
		State:  state,
		Action: action,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s '%s': current state is %s",
		e.Action, e.ID, e.State)
}
