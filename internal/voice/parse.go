package voice

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"caderneta/internal/ledger"
)

var (
	ErrTypeNotFound        = errors.New("voice: type not identified")
	ErrAmountNotFound      = errors.New("voice: amount not found")
	ErrDescriptionNotFound = errors.New("voice: description not found")
)

var (
	amountRegex = regexp.MustCompile(`\d+(?:[.,]\d{1,2})?`)

	incomeWords  = []string{"recebi", "ganhei"}
	expenseWords = []string{"gastei", "paguei", "investi"}
)

// descriptionMarker splits "gastei 30 com mercado"; the description is
// whatever follows its last occurrence.
const descriptionMarker = "com "

// Transaction is what a spoken sentence resolves to. Amount uses a dot as
// decimal separator.
type Transaction struct {
	Type        string
	Amount      string
	Description string
}

// Parse extracts a transaction from transcribed speech. Matching is plain
// case-sensitive substring search, the first number wins and the
// description is the text after the last "com ".
func Parse(text string) (Transaction, error) {
	var tx Transaction

	tx.Type = parseType(text)
	if tx.Type == "" {
		return Transaction{}, ErrTypeNotFound
	}

	amount := amountRegex.FindString(text)
	if amount == "" {
		return Transaction{}, ErrAmountNotFound
	}
	tx.Amount = strings.ReplaceAll(amount, ",", ".")

	parts := strings.Split(text, descriptionMarker)
	if len(parts) < 2 {
		return Transaction{}, ErrDescriptionNotFound
	}
	tx.Description = capitalize(strings.TrimSpace(parts[len(parts)-1]))

	return tx, nil
}

func parseType(text string) string {
	if containsAny(text, incomeWords) {
		return ledger.TypeIncome
	}
	if containsAny(text, expenseWords) {
		return ledger.TypeExpense
	}
	return ""
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + cases.Lower(language.BrazilianPortuguese).String(s[size:])
}
