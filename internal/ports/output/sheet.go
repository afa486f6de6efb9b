package output

import (
	"context"

	"qrattend/internal/domain/entities"
)

// SheetClient reads and writes the remote attendance sheet.
type SheetClient interface {
	Fetch(ctx context.Context) (*entities.Sheet, error)
	// Push writes the Attendance and Time Stamp columns of sheet and returns
	// the number of updated cells.
	Push(ctx context.Context, sheet *entities.Sheet) (int, error)
}
