package usecase

import (
	"errors"

	"mediforge/internal/domain/repository"
)

var (
	ErrSegmentNotFound      = errors.New("segment not found")
	ErrSessionNotFound      = repository.ErrSessionNotFound
	ErrNavigationInProgress = errors.New("navigation already in progress")
)
