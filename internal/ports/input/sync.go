package input

import (
	"context"

	"qrattend/internal/domain/entities"
)

type SyncUseCase interface {
	Tick(ctx context.Context) (entities.SyncResult, error)
	LastResult() entities.SyncResult
}
