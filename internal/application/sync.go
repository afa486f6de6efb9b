package application

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/input"
	"qrattend/internal/ports/output"
)

var _ input.SyncUseCase = (*SyncService)(nil)

// SyncService pushes the Attendance and Time Stamp columns of the table to
// the remote sheet whenever the remote copy differs.
type SyncService struct {
	table    *Table
	sheet    output.SheetClient
	notifier output.Notifier
	interval time.Duration

	mu   sync.Mutex
	last entities.SyncResult
}

func NewSyncService(table *Table, sheet output.SheetClient, interval time.Duration) *SyncService {
	return &SyncService{
		table:    table,
		sheet:    sheet,
		interval: interval,
	}
}

func (s *SyncService) UseNotifier(n output.Notifier) {
	s.notifier = n
}

// Tick runs one sync round: fetch a comparison snapshot, and push only when
// it differs from the table.
func (s *SyncService) Tick(ctx context.Context) (entities.SyncResult, error) {
	remote, err := s.sheet.Fetch(ctx)
	if err != nil {
		return entities.SyncResult{}, fmt.Errorf("fetch snapshot: %w", err)
	}

	res := entities.SyncResult{At: time.Now()}
	if !s.table.Equal(remote) {
		updated, err := s.sheet.Push(ctx, s.table.Snapshot())
		if err != nil {
			return entities.SyncResult{}, fmt.Errorf("push: %w", err)
		}
		res.Pushed = true
		res.UpdatedCells = updated
	}

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	if res.Pushed && s.notifier != nil {
		if err := s.notifier.NotifySync(ctx, res, s.table.Summary()); err != nil {
			log.Printf("⚠️ Notification de synchronisation: %v", err)
		}
	}
	return res, nil
}

// LastResult returns the outcome of the last successful tick.
func (s *SyncService) LastResult() entities.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Run ticks every interval until ctx is cancelled. A failed tick is logged and
// the next one proceeds.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Tick(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("❌ Synchronisation: %v", err)
				continue
			}
			if res.Pushed {
				log.Printf("✅ %d cellules mises à jour.", res.UpdatedCells)
			}
		}
	}
}
