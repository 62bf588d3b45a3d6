package tokenizer

import "strings"

// approximateCounter estimates tokens by counting whitespace-separated fields.
// It is used when the tiktoken encoding cannot be loaded; the count it
// produces is always labeled approximate in the console report.
type approximateCounter struct{}

// NewApproximateCounter returns the whitespace fallback counter directly,
// bypassing encoding detection.
func NewApproximateCounter() Counter {
	return approximateCounter{}
}

func (counter approximateCounter) Name() string {
	return approximateCounterName
}

func (counter approximateCounter) Exact() bool {
	return false
}

func (counter approximateCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}
