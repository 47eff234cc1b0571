// Package chart draws the ledger summary: expense and income pies, a
// totals bar chart and a blank fourth panel, on one PNG.
package chart

import (
	"fmt"
	"math"

	"caderneta/internal/ledger"
)

const (
	Title = "Gráficos Financeiros"

	expenseTitle = "Despesas por Categoria"
	incomeTitle  = "Receitas por Categoria"
	totalsTitle  = "Total Receitas vs Despesas"

	noExpenses = "Sem despesas"
	noIncome   = "Sem receitas"
	outOfScale = "Valores fora da escala"

	blankDescription = "(sem descrição)"

	// Past this magnitude go-chart's axis and box arithmetic overflows and
	// rendering never finishes.
	maxDrawable = 1e300
)

// Slice is one pie wedge. Percent is its share of the drawn total.
type Slice struct {
	Label   string
	Value   float64
	Percent float64
}

// Caption is the wedge label, percentage with one decimal.
func (s Slice) Caption() string {
	return fmt.Sprintf("%s (%.1f%%)", s.Label, s.Percent)
}

// PiePanel is either a pie or, when Placeholder is set, a text-only panel.
type PiePanel struct {
	Title       string
	Placeholder string
	Slices      []Slice
}

// BarPanel is the totals chart or, when Placeholder is set, a text-only panel.
type BarPanel struct {
	Title       string
	Placeholder string
	Income      float64
	Expense     float64
}

// Layout is everything drawn on the image, panel by panel.
type Layout struct {
	Title   string
	Expense PiePanel
	Income  PiePanel
	Totals  BarPanel
}

// Plan turns a summary into a layout. A partition with no records, or no
// positive group, gets a placeholder instead of a pie. So does any panel
// whose values are too large to draw.
func Plan(s ledger.Summary) Layout {
	return Layout{
		Title:   Title,
		Expense: piePanel(expenseTitle, noExpenses, s.Expense),
		Income:  piePanel(incomeTitle, noIncome, s.Income),
		Totals:  barPanel(s),
	}
}

func barPanel(s ledger.Summary) BarPanel {
	panel := BarPanel{
		Title:   totalsTitle,
		Income:  s.Income.Total.InexactFloat64(),
		Expense: s.Expense.Total.InexactFloat64(),
	}
	if !drawable(panel.Income) || !drawable(panel.Expense) {
		panel.Placeholder = outOfScale
		panel.Income, panel.Expense = 0, 0
	}
	return panel
}

// drawable reports whether v is finite and small enough for go-chart.
func drawable(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= maxDrawable
}

func piePanel(title, placeholder string, p ledger.Partition) PiePanel {
	panel := PiePanel{Title: title}

	var total float64
	oversized := false
	for _, g := range p.Groups {
		v := g.Total.InexactFloat64()
		if v <= 0 {
			continue
		}
		if !drawable(v) {
			oversized = true
		}
		label := g.Description
		if label == "" {
			label = blankDescription
		}
		panel.Slices = append(panel.Slices, Slice{Label: label, Value: v})
		total += v
	}

	if p.Empty() || len(panel.Slices) == 0 {
		panel.Placeholder = placeholder
		panel.Slices = nil
		return panel
	}
	if oversized || !drawable(total) {
		panel.Placeholder = outOfScale
		panel.Slices = nil
		return panel
	}

	for i := range panel.Slices {
		panel.Slices[i].Percent = panel.Slices[i].Value / total * 100
	}
	return panel
}
