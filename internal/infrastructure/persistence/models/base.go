package models

import (
	"time"

	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// baseEntity rebuilds the shared entity fields from stored columns
func baseEntity(id uuid.UUID, createdAt, updatedAt time.Time) shared.BaseEntity {
	return shared.BaseEntity{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
