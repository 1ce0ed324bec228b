package repository

import (
	"context"

	"mediforge/internal/domain/entity"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]entity.Patient, error)
}
