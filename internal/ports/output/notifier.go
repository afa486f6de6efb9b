package output

import (
	"context"

	"qrattend/internal/domain/entities"
)

// Notifier relays attendance activity to an outside channel.
type Notifier interface {
	NotifyMark(ctx context.Context, record entities.Record) error
	NotifySync(ctx context.Context, result entities.SyncResult, summary entities.Summary) error
}
