package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"qrattend/internal/adapters/discord"
	"qrattend/internal/adapters/httpapi"
	"qrattend/internal/adapters/scanner"
	"qrattend/internal/application"
	"qrattend/internal/config"
	"qrattend/internal/domain/entities"
	"qrattend/internal/infrastructure/backup"
	"qrattend/internal/infrastructure/database"
	"qrattend/internal/infrastructure/i18n"
	"qrattend/internal/infrastructure/spreadsheet"
	"qrattend/internal/ports/output"
	"qrattend/pkg/tz"
)

const finalSyncTimeout = 30 * time.Second

// Session owns everything one run of the desk shares: the table loaded at
// startup, the services built on it and the optional journal pool.
type Session struct {
	cfg        *config.Config
	out        io.Writer
	translator output.T
	runID      string

	sheet      output.SheetClient
	table      *application.Table
	attendance *application.AttendanceService
	sync       *application.SyncService

	pool *pgxpool.Pool
}

// Open authenticates, fetches the sheet once and builds the services.
func Open(ctx context.Context, cfg *config.Config, out io.Writer) (*Session, error) {
	opts, err := spreadsheet.ClientOptions(ctx, cfg.CredentialsPath, cfg.TokenPath, out)
	if err != nil {
		return nil, err
	}
	client, err := spreadsheet.NewClient(ctx, cfg.SpreadsheetID, cfg.SheetName, cfg.ReadRange, opts...)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, client, out)
}

// New builds a session on an existing sheet client.
func New(ctx context.Context, cfg *config.Config, sheet output.SheetClient, out io.Writer) (*Session, error) {
	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	remote, err := sheet.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	table, err := application.NewTable(remote)
	if err != nil {
		return nil, err
	}

	translator := i18n.NewTranslator(cfg.Locale)
	s := &Session{
		cfg:        cfg,
		out:        out,
		translator: translator,
		runID:      uuid.NewString(),
		sheet:      sheet,
		table:      table,
		attendance: application.NewAttendanceService(table, backup.NewFile(cfg.BackupPath), translator, loc),
		sync:       application.NewSyncService(table, sheet, cfg.SyncInterval()),
	}

	sum := table.Summary()
	s.println(translator.T("startup.loaded", map[string]any{
		"Total": sum.Total, "Present": sum.Present, "Sheet": cfg.SheetName,
	}))
	return s, nil
}

// Attach wires the optional journal and notifier configured for the desk.
func (s *Session) Attach(ctx context.Context) error {
	if s.cfg.DatabaseURL != "" {
		if err := database.RunMigrations(s.cfg.DatabaseURL); err != nil {
			return err
		}
		pool, err := database.NewPool(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect journal: %w", err)
		}
		s.pool = pool
		s.attendance.UseJournal(database.NewJournalRepository(pool), s.runID, s.cfg.SpreadsheetID, s.cfg.SheetName)

		if s.cfg.JournalReplay {
			n, err := s.attendance.Replay(ctx)
			if err != nil {
				return err
			}
			s.println(s.translator.T("startup.replayed", map[string]any{"Count": n}))
		}
	}

	if s.cfg.DiscordWebhookURL != "" {
		n, err := discord.NewNotifier(s.cfg.DiscordWebhookURL, s.cfg.SheetName)
		if err != nil {
			return err
		}
		s.attendance.UseNotifier(n)
		s.sync.UseNotifier(n)
	}
	return nil
}

func (s *Session) Translator() output.T { return s.translator }

func (s *Session) Records() []entities.Record { return s.table.Records() }

func (s *Session) Summary() entities.Summary { return s.table.Summary() }

// Run scans from src until the quit key or ctx cancellation, with the sync
// job and the optional status server running alongside. Once the scanner
// stops they are shut down and a last push is attempted.
func (s *Session) Run(ctx context.Context, src scanner.Source) error {
	bg, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.sync.Run(bg)
	}()

	if s.cfg.StatusAddr != "" {
		h := httpapi.NewRouter(s.attendance, s.sync).Handler()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpapi.Serve(bg, s.cfg.StatusAddr, h); err != nil {
				log.Printf("❌ Serveur de statut: %v", err)
			}
		}()
	}

	loop := scanner.NewLoop(src, s.attendance, s.translator, s.out, scanner.Options{IDPrefix: s.cfg.Prefix()})
	s.println(s.translator.T("scan.started", map[string]any{"Camera": s.cfg.CamNo}))
	loop.Run(bg)
	s.println(s.translator.T("scan.stopped", nil))

	cancel()
	wg.Wait()

	return s.finalSync()
}

func (s *Session) finalSync() error {
	ctx, cancel := context.WithTimeout(context.Background(), finalSyncTimeout)
	defer cancel()

	res, err := s.sync.Tick(ctx)
	if err != nil {
		s.println(s.translator.T("sync.final_failed", map[string]any{"Error": err.Error()}))
		return err
	}
	if res.Pushed {
		s.println(s.translator.T("sync.cells_updated", map[string]any{"Cells": res.UpdatedCells}))
	}
	return nil
}

func (s *Session) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
