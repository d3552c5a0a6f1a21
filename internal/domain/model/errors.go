package model

import "errors"

var (
	// ErrInvalidArgument: valor ausente (nil) en save/delete.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingPrerequisite: falta una relación requerida (PetType, Owner o Pet persistidos).
	ErrMissingPrerequisite = errors.New("missing prerequisite")

	ErrNotFound = errors.New("not found")
)
