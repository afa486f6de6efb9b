package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"qrattend/internal/domain"
)

func newSyncFixture(t *testing.T) (*SyncService, *Table, *fakeSheet) {
	t.Helper()
	sheet := newTestSheet(
		[]string{"42", "Asha", "555-0100", "asha@example.org"},
		[]string{"43", "Ravi", "555-0101", "ravi@example.org"},
	)
	table, err := NewTable(sheet)
	if err != nil {
		t.Fatal(err)
	}
	remote := &fakeSheet{remote: sheet.Clone()}
	return NewSyncService(table, remote, time.Hour), table, remote
}

func TestTickUnchangedDoesNotPush(t *testing.T) {
	svc, _, remote := newSyncFixture(t)

	res, err := svc.Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Pushed || remote.pushCount() != 0 {
		t.Errorf("pushed an unchanged table: %+v", res)
	}
	if remote.fetches != 1 {
		t.Errorf("fetches = %d, want 1", remote.fetches)
	}
}

func TestTickPushesAttendanceColumns(t *testing.T) {
	svc, table, remote := newSyncFixture(t)
	notifier := &fakeNotifier{}
	svc.UseNotifier(notifier)
	if _, _, err := table.Mark("43", "14:03:21"); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed || res.UpdatedCells != 6 {
		t.Errorf("result = %+v, want pushed with 6 cells", res)
	}
	pushed := remote.pushes[0]
	want := [][]string{
		{"Attendance", "Time Stamp"},
		{"", ""},
		{"P", "14:03:21"},
	}
	for i := range want {
		if len(pushed[i]) != 2 || pushed[i][0] != want[i][0] || pushed[i][1] != want[i][1] {
			t.Errorf("pushed row %d = %q, want %q", i, pushed[i], want[i])
		}
	}
	if len(notifier.syncs) != 1 {
		t.Errorf("sync notifications = %d, want 1", len(notifier.syncs))
	}
	if svc.LastResult().UpdatedCells != 6 {
		t.Errorf("LastResult = %+v", svc.LastResult())
	}

	if res, _ := svc.Tick(context.Background()); res.Pushed {
		t.Error("second tick pushed although remote caught up")
	}
}

func TestTickFetchError(t *testing.T) {
	svc, _, remote := newSyncFixture(t)
	remote.err = domain.ErrRemote

	_, err := svc.Tick(context.Background())
	if !errors.Is(err, domain.ErrRemote) {
		t.Fatalf("err = %v, want ErrRemote", err)
	}
	if remote.pushCount() != 0 {
		t.Error("pushed after a failed fetch")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	svc, table, remote := newSyncFixture(t)
	svc.interval = 5 * time.Millisecond
	if _, _, err := table.Mark("42", "10:00:00"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for remote.pushCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no push within 2s")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMarkWhileTicking(t *testing.T) {
	const attendees = 60
	rows := make([][]string, attendees)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i), fmt.Sprintf("Attendee %d", i), "555-0100", ""}
	}
	sheet := newTestSheet(rows...)
	table, err := NewTable(sheet)
	if err != nil {
		t.Fatal(err)
	}
	remote := &fakeSheet{remote: sheet.Clone()}
	syncSvc := NewSyncService(table, remote, time.Hour)
	attendance := NewAttendanceService(table, &fakeBackup{}, fakeTranslator{}, time.UTC)
	ctx := context.Background()

	done := make(chan struct{})
	var tickers sync.WaitGroup
	tickers.Add(1)
	go func() {
		defer tickers.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := syncSvc.Tick(ctx); err != nil {
				t.Errorf("Tick: %v", err)
				return
			}
			_ = syncSvc.LastResult()
		}
	}()

	var markers sync.WaitGroup
	for w := 0; w < 4; w++ {
		markers.Add(1)
		go func(w int) {
			defer markers.Done()
			for i := w; i < attendees; i += 4 {
				if _, err := attendance.MarkPresent(ctx, fmt.Sprint(i)); err != nil {
					t.Errorf("MarkPresent(%d): %v", i, err)
				}
				attendance.Summary()
				attendance.Lookup(fmt.Sprint(i))
			}
		}(w)
	}
	markers.Wait()
	close(done)
	tickers.Wait()

	if _, err := syncSvc.Tick(ctx); err != nil {
		t.Fatal(err)
	}
	if got := table.Summary().Present; got != attendees {
		t.Errorf("present = %d, want %d", got, attendees)
	}
	final, err := remote.Fetch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !table.Equal(final) {
		t.Error("remote sheet differs from the table after the last tick")
	}
}
