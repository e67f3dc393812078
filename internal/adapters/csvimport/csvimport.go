// Package csvimport reads roster CSV uploads.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/okian/halloffame/internal/domain/model"
)

// Column names understood in the header row.
const (
	ColName           = "name"
	ColImageURL       = "image_url"
	ColScore          = "score"
	ColTeamName       = "team_name"
	ColProjectLink    = "project_link"
	ColHackathonCount = "hackathon_count"
	ColCollege        = "college"
)

// templateColumns is the order of the downloadable template, also used
// positionally when a header carries no known column name.
var templateColumns = []string{ColName, ColImageURL, ColScore, ColTeamName, ColProjectLink}

var knownColumns = map[string]struct{}{
	ColName: {}, ColImageURL: {}, ColScore: {}, ColTeamName: {},
	ColProjectLink: {}, ColHackathonCount: {}, ColCollege: {},
}

// Row is one parsed student together with its line in the file.
type Row struct {
	Line    int
	Student model.NewStudent
}

// RowError explains why a line was skipped.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Template returns the CSV template offered for download.
func Template() []byte {
	return []byte(strings.Join(templateColumns, ",") + "\n")
}

// Parse reads a CSV upload. The first record is the header. Malformed rows
// are returned as RowErrors and do not stop parsing; a read failure does.
func Parse(r io.Reader, opts ...Option) ([]Row, []RowError, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmpty
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: header: %w", ErrRead, err)
	}
	columns := mapColumns(header)

	var (
		rows    []Row
		skipped []RowError
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, RowError{Line: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			skipped = append(skipped, RowError{
				Line:   line,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(record)),
			})
			continue
		}
		s := toStudent(columns, record)
		if s.Name == "" {
			skipped = append(skipped, RowError{Line: line, Reason: "name is empty"})
			continue
		}
		if cfg.maxRows > 0 && len(rows) >= cfg.maxRows {
			return nil, nil, fmt.Errorf("%w: more than %d rows", ErrTooManyRows, cfg.maxRows)
		}
		rows = append(rows, Row{Line: line, Student: s})
	}
	return rows, skipped, nil
}

// mapColumns returns the column index of every known field.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := knownColumns[key]; !ok {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	if len(columns) > 0 {
		return columns
	}
	for i, name := range templateColumns {
		if i < len(header) {
			columns[name] = i
		}
	}
	return columns
}

func toStudent(columns map[string]int, record []string) model.NewStudent {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return model.NewStudent{
		Name:           field(ColName),
		ImageURL:       field(ColImageURL),
		Score:          LeadingInt(field(ColScore)),
		TeamName:       field(ColTeamName),
		ProjectLink:    field(ColProjectLink),
		HackathonCount: LeadingInt(field(ColHackathonCount)),
		College:        field(ColCollege),
	}
}

// LeadingInt parses the optional sign and digits at the start of s, ignoring
// anything after them. Input without leading digits yields 0.
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > math.MaxInt32/10 {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
