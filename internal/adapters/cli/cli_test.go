package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"qrattend/internal/domain"
	"qrattend/internal/domain/entities"
)

type keyTranslator struct{}

func (keyTranslator) T(key string, _ map[string]any) string { return "<" + key + ">" }

func TestPrintTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"ID", "Name"}, [][]string{{"42", "Asha"}, {"1234", "Bo"}}, []string{"", "x"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ID  \tName\t" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "1234\tBo  \t" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "    \tx   \t" {
		t.Errorf("footer = %q", lines[3])
	}
}

func TestPrintStatusFooterCountsPresent(t *testing.T) {
	var buf bytes.Buffer
	records := []entities.Record{
		{RegistrationID: "42", Name: "Asha", Attendance: "P", TimeStamp: "09:00:00"},
		{RegistrationID: "43", Name: "Ravi"},
	}
	PrintStatus(&buf, records, entities.Summary{Total: 2, Present: 1, Absent: 1}, "Present:")

	out := buf.String()
	if !strings.Contains(out, "Registration ID") || !strings.Contains(out, "09:00:00") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if !strings.Contains(out, "Present:") || !strings.Contains(out, "1/2") {
		t.Errorf("footer missing:\n%s", out)
	}
}

func TestDescribe(t *testing.T) {
	err := Describe(keyTranslator{}, fmt.Errorf("load: %w", domain.ErrSchema))
	if !errors.Is(err, domain.ErrSchema) {
		t.Fatalf("lost wrapped error: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "<error.bad_schema>") {
		t.Errorf("err = %q", err)
	}

	plain := errors.New("boom")
	if got := Describe(keyTranslator{}, plain); got != plain {
		t.Errorf("plain error changed: %v", got)
	}
	if Describe(keyTranslator{}, nil) != nil {
		t.Error("nil error should stay nil")
	}
}

func TestSetupCommands(t *testing.T) {
	root := SetupCommands(&bytes.Buffer{})
	for _, name := range []string{"status", "badges"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
