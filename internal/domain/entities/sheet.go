package entities

// Sheet is the raw content of the remote range: the header row followed by
// the data rows, every row padded to the header width.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// NewSheet builds a Sheet from the values returned by the spreadsheet API.
// The first row is the header. Missing trailing cells become "".
func NewSheet(values [][]string) *Sheet {
	if len(values) == 0 {
		return &Sheet{}
	}
	headers := append([]string(nil), values[0]...)
	rows := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		rows = append(rows, padRow(v, len(headers)))
	}
	return &Sheet{Headers: headers, Rows: rows}
}

func padRow(v []string, width int) []string {
	row := make([]string, width)
	copy(row, v)
	return row
}

// Clone returns a deep copy.
func (s *Sheet) Clone() *Sheet {
	out := &Sheet{
		Headers: append([]string(nil), s.Headers...),
		Rows:    make([][]string, len(s.Rows)),
	}
	for i, r := range s.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// Equal reports whether both sheets hold the same cells.
func (s *Sheet) Equal(o *Sheet) bool {
	if s == nil || o == nil {
		return s == o
	}
	if !equalRow(s.Headers, o.Headers) || len(s.Rows) != len(o.Rows) {
		return false
	}
	for i := range s.Rows {
		if !equalRow(s.Rows[i], o.Rows[i]) {
			return false
		}
	}
	return true
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ColumnIndex returns the position of header, or -1.
func (s *Sheet) ColumnIndex(header string) int {
	for i, h := range s.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// TailColumns returns the last n columns of every row, header included.
func (s *Sheet) TailColumns(n int) [][]string {
	if n > len(s.Headers) {
		n = len(s.Headers)
	}
	from := len(s.Headers) - n
	out := make([][]string, 0, len(s.Rows)+1)
	out = append(out, append([]string(nil), s.Headers[from:]...))
	for _, r := range s.Rows {
		out = append(out, append([]string(nil), r[from:]...))
	}
	return out
}
