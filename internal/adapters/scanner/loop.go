package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"qrattend/internal/domain"
	"qrattend/internal/ports/input"
	"qrattend/internal/ports/output"
)

type State int

const (
	Running State = iota
	Stopped
)

// Options tunes the scan loop; zero values take the defaults.
type Options struct {
	IDPrefix    string
	QuitKey     rune
	Poll        time.Duration // sleep at the end of every iteration
	Pause       time.Duration // after a mark attempt
	RepeatPause time.Duration // after an attendee already seen this run
}

func (o Options) withDefaults() Options {
	if o.QuitKey == 0 {
		o.QuitKey = 'q'
	}
	if o.Poll == 0 {
		o.Poll = 200 * time.Millisecond
	}
	if o.Pause == 0 {
		o.Pause = 1500 * time.Millisecond
	}
	if o.RepeatPause == 0 {
		o.RepeatPause = 2 * time.Second
	}
	return o
}

// Loop reads QR codes from a Source and marks the attendees. It is the only
// caller of MarkPresent, so marks are serialized.
type Loop struct {
	src        Source
	attendance input.AttendanceUseCase
	translator output.T
	out        io.Writer
	opts       Options

	seen  map[string]struct{}
	state State
	sleep func(ctx context.Context, d time.Duration)
}

func NewLoop(src Source, attendance input.AttendanceUseCase, translator output.T, out io.Writer, opts Options) *Loop {
	return &Loop{
		src:        src,
		attendance: attendance,
		translator: translator,
		out:        out,
		opts:       opts.withDefaults(),
		seen:       make(map[string]struct{}),
		state:      Stopped,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (l *Loop) State() State { return l.state }

// Seen reports whether id was handled during this run.
func (l *Loop) Seen(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Run scans until the quit key is pressed or ctx is cancelled. The source is
// closed on return.
func (l *Loop) Run(ctx context.Context) {
	defer func() {
		l.state = Stopped
		if err := l.src.Close(); err != nil {
			log.Printf("⚠️ Fermeture de la caméra: %v", err)
		}
	}()

	l.state = Running
	for l.state == Running {
		if ctx.Err() != nil {
			return
		}
		if key := l.src.PollKey(); key == int(l.opts.QuitKey) {
			return
		}

		payload, err := l.src.Grab()
		if err == nil && payload != "" {
			l.handle(ctx, payload)
		}
		l.sleep(ctx, l.opts.Poll)
	}
}

func (l *Loop) handle(ctx context.Context, payload string) {
	id, err := ExtractID(payload, l.opts.IDPrefix)
	if err != nil {
		l.println(l.translator.T("error."+domain.Code(err), nil))
		l.sleep(ctx, l.opts.Pause)
		return
	}

	if l.Seen(id) {
		rec, _ := l.attendance.Lookup(id)
		l.println(l.translator.T("scan.already_marked", map[string]any{"TimeStamp": rec.TimeStamp}))
		l.sleep(ctx, l.opts.RepeatPause)
		return
	}

	msg, err := l.attendance.MarkPresent(ctx, id)
	switch {
	case err == nil, errors.Is(err, domain.ErrAlreadyMarked):
		l.seen[id] = struct{}{}
		l.println(msg)
	case errors.Is(err, domain.ErrNotFound):
		l.println(l.translator.T("scan.not_found", map[string]any{"ID": id}))
	default:
		log.Printf("❌ Marquage de %s: %v", id, err)
		l.println(l.translator.T("scan.mark_failed", nil))
	}
	l.sleep(ctx, l.opts.Pause)
}

func (l *Loop) println(s string) {
	fmt.Fprintln(l.out, s)
}
