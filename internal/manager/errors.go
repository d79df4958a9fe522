package manager

import (
	"errors"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var (
	ErrListNotFound      = errors.New("manager: list not found")
	ErrTaskNotFound      = errors.New("manager: task not found")
	ErrDuplicateListName = errors.New("manager: duplicate list name")
	ErrLastList          = errors.New("manager: cannot remove the last list")

	// ErrPersist wraps a failed save. The in-memory change that triggered the
	// save has been kept; only the on-disk copy is behind.
	ErrPersist = errors.New("manager: changes not saved")

	ErrEmptyName  = model.ErrEmptyName
	ErrEmptyTitle = model.ErrEmptyTitle
)
