package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Store is the CSV file backing the ledger. It holds no lock: each Append
// is a single write call, and concurrent readers may see a partial file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Append writes one entry at the end of the file, creating the file and
// its header on first use.
func (s *Store) Append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat ledger: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		w.Write(Header)
	}
	w.Write(e.Row())
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// LoadAll reads the whole file. It returns ErrNoData when the file does not
// exist, ErrEmpty when it has no data rows and ErrMalformed when there is no
// descricao column.
func (s *Store) LoadAll() (*Sheet, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	columns := make([]string, len(rows[0]))
	index := make(map[string]int, len(columns))
	for i, name := range rows[0] {
		columns[i] = lower(strings.TrimSpace(name))
		if _, seen := index[columns[i]]; !seen {
			index[columns[i]] = i
		}
	}
	if _, ok := index["descricao"]; !ok {
		return nil, ErrMalformed
	}

	sheet := &Sheet{Columns: columns}
	for _, raw := range rows[1:] {
		row := make([]string, len(columns))
		copy(row, raw)
		sheet.Rows = append(sheet.Rows, row)

		field := func(name string) string {
			if i, ok := index[name]; ok {
				return row[i]
			}
			return ""
		}
		sheet.Records = append(sheet.Records, Record{
			Date:        field("data"),
			Type:        field("tipo"),
			Description: field("descricao"),
			Amount:      field("valor"),
			Value:       coerceAmount(field("valor")),
		})
	}

	return sheet, nil
}

// coerceAmount parses a stored amount, treating anything non-numeric as zero.
func coerceAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// lower builds a fresh Caser per call; Casers are not safe to share
// between goroutines.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func equalFold(a, b string) bool {
	return lower(a) == lower(b)
}
