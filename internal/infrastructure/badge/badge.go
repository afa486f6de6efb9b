package badge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"

	"qrattend/internal/domain/entities"
)

const size = 256

// Generator writes one QR code PNG per attendee. The code encodes the
// payload prefix followed by the Registration ID, which is what the scanner
// strips back off.
type Generator struct {
	dir    string
	prefix string
}

func NewGenerator(dir, prefix string) *Generator {
	return &Generator{dir: dir, prefix: prefix}
}

// Write renders badges for records and returns the number of files written.
func (g *Generator) Write(records []entities.Record) (int, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create badge directory: %w", err)
	}
	n := 0
	for _, r := range records {
		path := filepath.Join(g.dir, FileName(r.RegistrationID))
		if err := qrcode.WriteFile(g.prefix+r.RegistrationID, qrcode.Medium, size, path); err != nil {
			return n, fmt.Errorf("write badge %s: %w", r.RegistrationID, err)
		}
		n++
	}
	return n, nil
}

// FileName maps a Registration ID to a safe file name.
func FileName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	return safe + ".png"
}
