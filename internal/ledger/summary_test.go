package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(kind, desc, amount string) Record {
	return Record{Type: kind, Description: desc, Amount: amount, Value: coerceAmount(amount)}
}

func TestSummarizePartitionsCaseInsensitively(t *testing.T) {
	s := Summarize([]Record{
		rec("Receita", "Freela", "150.50"),
		rec("RECEITA", "Freela", "49.50"),
		rec("despesa", "Mercado", "30"),
		rec("Transferência", "Poupança", "1000"),
	})

	assert.Equal(t, 2, s.Income.Count)
	assert.Equal(t, 1, s.Expense.Count)
	assert.Equal(t, "200", s.Income.Total.String())
	assert.Equal(t, "30", s.Expense.Total.String())
	require.Len(t, s.Income.Groups, 1)
	assert.Equal(t, "Freela", s.Income.Groups[0].Description)
}

func TestSummarizeGroupsSortedByDescription(t *testing.T) {
	s := Summarize([]Record{
		rec("Despesa", "Mercado", "30"),
		rec("Despesa", "Aluguel", "1200"),
		rec("Despesa", "Mercado", "20.25"),
	})

	require.Len(t, s.Expense.Groups, 2)
	assert.Equal(t, "Aluguel", s.Expense.Groups[0].Description)
	assert.Equal(t, "1200", s.Expense.Groups[0].Total.String())
	assert.Equal(t, "Mercado", s.Expense.Groups[1].Description)
	assert.Equal(t, "50.25", s.Expense.Groups[1].Total.String())
}

func TestSummarizeGroupsAddUpToPartitionTotal(t *testing.T) {
	records := []Record{
		rec("Receita", "Salário", "3000"),
		rec("Receita", "Freela", "abc"),
		rec("Receita", "", "10.10"),
		rec("Despesa", "Luz", "89.90"),
		rec("Despesa", "Luz", ""),
		rec("Despesa", "Internet", "99.99"),
	}
	s := Summarize(records)

	for _, p := range []Partition{s.Income, s.Expense} {
		sum := decimal.Zero
		for _, g := range p.Groups {
			sum = sum.Add(g.Total)
		}
		assert.True(t, sum.Equal(p.Total), "groups %s != total %s", sum, p.Total)
	}

	direct := decimal.Zero
	for _, r := range records {
		if r.IsIncome() {
			direct = direct.Add(r.Value)
		}
	}
	assert.True(t, direct.Equal(s.Income.Total))
	assert.Equal(t, "3010.1", s.Income.Total.String())
}

func TestSummarizeEmptyPartition(t *testing.T) {
	s := Summarize([]Record{rec("Despesa", "Mercado", "30")})

	assert.True(t, s.Income.Empty())
	assert.False(t, s.Expense.Empty())
	assert.True(t, s.Income.Total.IsZero())
	assert.Empty(t, s.Income.Groups)
}
