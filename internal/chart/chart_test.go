package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caderneta/internal/ledger"
)

func records(rows ...[3]string) []ledger.Record {
	var out []ledger.Record
	for _, r := range rows {
		v, err := decimal.NewFromString(r[2])
		if err != nil {
			v = decimal.Zero
		}
		out = append(out, ledger.Record{Type: r[0], Description: r[1], Amount: r[2], Value: v})
	}
	return out
}

func TestPlanExpensesOnly(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Despesa", "Mercado", "75"},
		[3]string{"Despesa", "Luz", "25"},
	)))

	assert.Equal(t, "Gráficos Financeiros", l.Title)
	assert.Equal(t, "Sem receitas", l.Income.Placeholder)
	assert.Empty(t, l.Income.Slices)
	assert.Empty(t, l.Expense.Placeholder)
	assert.Equal(t, 0.0, l.Totals.Income)
	assert.Equal(t, 100.0, l.Totals.Expense)

	require.Len(t, l.Expense.Slices, 2)
	assert.Equal(t, "Luz (25.0%)", l.Expense.Slices[0].Caption())
	assert.Equal(t, "Mercado (75.0%)", l.Expense.Slices[1].Caption())
}

func TestPlanPercentOneDecimal(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Receita", "A", "1"},
		[3]string{"Receita", "B", "2"},
	)))

	require.Len(t, l.Income.Slices, 2)
	assert.Equal(t, "A (33.3%)", l.Income.Slices[0].Caption())
	assert.Equal(t, "B (66.7%)", l.Income.Slices[1].Caption())
	assert.Equal(t, "Sem despesas", l.Expense.Placeholder)
}

func TestPlanZeroValuedPartitionGetsPlaceholder(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Receita", "Freela", "abc"},
	)))

	assert.Equal(t, "Sem receitas", l.Income.Placeholder)
	assert.Equal(t, 0.0, l.Totals.Income)
}

func TestPlanBlankDescription(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Despesa", "", "10"},
	)))

	require.Len(t, l.Expense.Slices, 1)
	assert.Equal(t, "(sem descrição)", l.Expense.Slices[0].Label)
}

func TestRenderExpensesOnly(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Despesa", "Mercado", "30"},
		[3]string{"Despesa", "Aluguel", "1200"},
	)))

	data, err := Render(l)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRenderBothPartitions(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Receita", "Salário", "3000"},
		[3]string{"Receita", "Freela", "150.50"},
		[3]string{"Despesa", "Mercado", "30"},
		[3]string{"Despesa", "Luz", "89.90"},
	)))

	data, err := Render(l)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPlanOversizedAmounts(t *testing.T) {
	cases := []struct {
		name string
		rows [][3]string
	}{
		{name: "single overflowing amount", rows: [][3]string{{"Despesa", "Mercado", "1e400"}}},
		{name: "sum overflows", rows: [][3]string{{"Despesa", "Mercado", "1e308"}, {"Despesa", "Luz", "1e308"}}},
		{name: "negative overflow", rows: [][3]string{{"Despesa", "Estorno", "-1e400"}, {"Despesa", "Luz", "10"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := Plan(ledger.Summarize(records(tc.rows...)))

			assert.Equal(t, "Valores fora da escala", l.Totals.Placeholder)
			assert.Zero(t, l.Totals.Income)
			assert.Zero(t, l.Totals.Expense)
			assert.Equal(t, "Sem receitas", l.Income.Placeholder)

			done := make(chan error, 1)
			go func() {
				_, err := Render(l)
				done <- err
			}()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("render did not finish")
			}
		})
	}
}

func TestPlanOversizedPieGetsPlaceholder(t *testing.T) {
	l := Plan(ledger.Summarize(records(
		[3]string{"Despesa", "Mercado", "1e400"},
		[3]string{"Receita", "Salário", "3000"},
	)))

	assert.Equal(t, "Valores fora da escala", l.Expense.Placeholder)
	assert.Empty(t, l.Expense.Slices)
	require.Len(t, l.Income.Slices, 1)
	assert.Empty(t, l.Income.Placeholder)
}

func TestRenderRejectsNonFiniteTotals(t *testing.T) {
	l := Plan(ledger.Summarize(nil))
	l.Totals.Income = math.Inf(1)

	_, err := Render(l)
	assert.Error(t, err)
}
