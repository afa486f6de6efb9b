package output

import (
	"context"

	"qrattend/internal/domain/entities"
)

type MarkJournal interface {
	Record(ctx context.Context, mark *entities.Mark) error
	FindBySheet(ctx context.Context, spreadsheetID, sheetName string) ([]entities.Mark, error)
}
