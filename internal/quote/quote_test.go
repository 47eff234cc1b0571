package quote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQuotes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frases.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPairByDay(t *testing.T) {
	path := writeQuotes(t, "dia 1 a\ndia 1 b\n\n  dia 2 a  \ndia 2 b\ndia 3 a\n")
	p := NewProvider(path)

	cases := []struct {
		day  int
		want Pair
	}{
		{1, Pair{"dia 1 a", "dia 1 b"}},
		{2, Pair{"dia 2 a", "dia 2 b"}},
		{3, Pair{"dia 3 a", ""}},
		{4, Pair{"", ""}},
		{366, Pair{"", ""}},
	}

	for _, tc := range cases {
		got, err := p.Pair(tc.day)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "day %d", tc.day)
	}
}

func TestTodayUsesDayOfYear(t *testing.T) {
	var b strings.Builder
	for day := 1; day <= 366; day++ {
		b.WriteString("linha A do dia ")
		b.WriteString(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC).Format("01-02"))
		b.WriteString("\nlinha B\n")
	}
	path := writeQuotes(t, b.String())

	feb1 := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	p := NewProvider(path).WithClock(func() time.Time { return feb1 })

	assert.Equal(t, "linha A do dia 02-01\nlinha B", p.Today())
	assert.Equal(t, p.Today(), p.Today(), "same date, same quote")
}

func TestTodayMissingFile(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "nope.txt"))

	msg := p.Today()
	assert.True(t, strings.HasPrefix(msg, "Erro ao carregar a frase: "), msg)
	assert.Contains(t, msg, "nope.txt")
}
