// Package quote picks the motivational quote of the day from a static file
// holding two non-blank lines per day of the year.
package quote

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Pair is the two lines shown for one day.
type Pair struct {
	First  string
	Second string
}

func (p Pair) String() string {
	return p.First + "\n" + p.Second
}

type Provider struct {
	path string
	now  func() time.Time
}

func NewProvider(path string) *Provider {
	return &Provider{path: path, now: time.Now}
}

// WithClock replaces the clock used to pick today's pair.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Pair returns the lines at (day-1)*2 and (day-1)*2+1, counting only
// non-blank lines. Lines past the end of the file are empty.
func (p *Provider) Pair(day int) (Pair, error) {
	lines, err := p.readLines()
	if err != nil {
		return Pair{}, err
	}

	i := (day - 1) * 2
	return Pair{First: lineAt(lines, i), Second: lineAt(lines, i+1)}, nil
}

// Today renders today's pair, or the read error as a message.
func (p *Provider) Today() string {
	pair, err := p.Pair(p.now().YearDay())
	if err != nil {
		return fmt.Sprintf("Erro ao carregar a frase: %v", err)
	}
	return pair.String()
}

func (p *Provider) readLines() ([]string, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
