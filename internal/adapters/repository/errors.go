package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrAlreadyExists = errors.New("match already exists")
	ErrNotFound      = errors.New("match not found")
)

func alreadyExists(id uuid.UUID) error {
	return model.NewError(
		fmt.Sprintf("Cannot save new match with id='%s'; a match with this id already exists.", id),
		ErrAlreadyExists)
}

func notFound(id uuid.UUID) error {
	return model.NewError(
		fmt.Sprintf("Cannot update match with id='%s'; a match with this id does not exist.", id),
		ErrNotFound)
}
