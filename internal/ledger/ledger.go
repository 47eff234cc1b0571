// Package ledger keeps the append-only CSV file of income and expense entries.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Entry type tags as written by the form and by voice intake.
const (
	TypeIncome  = "Receita"
	TypeExpense = "Despesa"
)

// DateLayout is the on-disk date format.
const DateLayout = "2006-01-02"

// Header is written once, when the ledger file is created.
var Header = []string{"data", "tipo", "descricao", "valor"}

var (
	// ErrNoData means the ledger file does not exist yet.
	ErrNoData = errors.New("ledger: no data")
	// ErrEmpty means the file exists but holds no rows.
	ErrEmpty = errors.New("ledger: empty file")
	// ErrMalformed means the file lacks the descricao column.
	ErrMalformed = errors.New("ledger: malformed file")
)

// Entry is one row as the recorder writes it. Type and Amount are kept
// exactly as given.
type Entry struct {
	Date        time.Time
	Type        string
	Description string
	Amount      string
}

// Row renders the entry as a CSV row.
func (e Entry) Row() []string {
	return []string{e.Date.Format(DateLayout), e.Type, e.Description, e.Amount}
}

// Record is one loaded row. Value is Amount coerced to a number; anything
// that does not parse counts as zero.
type Record struct {
	Date        string
	Type        string
	Description string
	Amount      string
	Value       decimal.Decimal
}

// IsIncome reports whether the record type is "receita", ignoring case.
func (r Record) IsIncome() bool {
	return equalFold(r.Type, TypeIncome)
}

// IsExpense reports whether the record type is "despesa", ignoring case.
func (r Record) IsExpense() bool {
	return equalFold(r.Type, TypeExpense)
}

// Sheet is the whole file in memory: lower-cased columns, the raw rows in
// file order, and the decoded records.
type Sheet struct {
	Columns []string
	Rows    [][]string
	Records []Record
}
