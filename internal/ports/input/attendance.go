package input

import (
	"context"

	"qrattend/internal/domain/entities"
)

type AttendanceUseCase interface {
	MarkPresent(ctx context.Context, registrationID string) (string, error)
	Lookup(registrationID string) (entities.Record, bool)
	Summary() entities.Summary
}
