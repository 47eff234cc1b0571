package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Group is the total of one description within a partition.
type Group struct {
	Description string
	Total       decimal.Decimal
}

// Partition holds the records of one type, grouped by description.
type Partition struct {
	Count  int
	Groups []Group
	Total  decimal.Decimal
}

func (p Partition) Empty() bool {
	return p.Count == 0
}

// Summary is the ledger split into income and expense. Records whose type
// is neither are left out of both.
type Summary struct {
	Income  Partition
	Expense Partition
}

func Summarize(records []Record) Summary {
	var income, expense []Record
	for _, rec := range records {
		switch {
		case rec.IsIncome():
			income = append(income, rec)
		case rec.IsExpense():
			expense = append(expense, rec)
		}
	}
	return Summary{
		Income:  partition(income),
		Expense: partition(expense),
	}
}

// partition groups by description, sorted by description. Blank
// descriptions form their own group so group totals always add up to the
// partition total.
func partition(records []Record) Partition {
	p := Partition{Count: len(records), Total: decimal.Zero}
	totals := make(map[string]decimal.Decimal)
	for _, rec := range records {
		totals[rec.Description] = totals[rec.Description].Add(rec.Value)
		p.Total = p.Total.Add(rec.Value)
	}

	for desc, total := range totals {
		p.Groups = append(p.Groups, Group{Description: desc, Total: total})
	}
	sort.Slice(p.Groups, func(i, j int) bool {
		return p.Groups[i].Description < p.Groups[j].Description
	})
	return p
}
