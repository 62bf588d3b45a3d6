// Package tokenizer counts tokens in rendered documents. The exact counter is
// backed by the tiktoken cl100k_base encoding; when that encoding cannot be
// loaded the package degrades to an approximate whitespace count, and the
// selection is surfaced so callers can label the reported number.
package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"

	"github.com/projmd/projmd/internal/types"
)

const (
	// defaultEncodingName selects the tiktoken encoding used for exact counts.
	defaultEncodingName = "cl100k_base"
	// approximateCounterName labels the fallback counting method.
	approximateCounterName = "whitespace"
)

// Counter estimates token counts for text content. Exact reports whether the
// counter is a real tokenizer or a heuristic approximation.
type Counter interface {
	Name() string
	Exact() bool
	CountString(input string) (int, error)
}

// NewCounter returns the preferred counter for the current environment: the
// named tiktoken encoding when it loads, otherwise the approximate fallback.
// An empty encodingName selects cl100k_base.
func NewCounter(encodingName string) Counter {
	if encodingName == "" {
		encodingName = defaultEncodingName
	}
	encoding, encodingError := tiktoken.GetEncoding(encodingName)
	if encodingError != nil || encoding == nil {
		return approximateCounter{}
	}
	return tiktokenCounter{encoding: encoding, encodingName: encodingName}
}

// Count produces a TokenReport for the provided text using counter.
func Count(counter Counter, text string) (types.TokenReport, error) {
	if counter == nil {
		return types.TokenReport{}, errors.New("nil tokenizer counter")
	}
	tokens, countError := counter.CountString(text)
	if countError != nil {
		return types.TokenReport{}, countError
	}
	return types.TokenReport{
		Tokens:     tokens,
		MethodName: counter.Name(),
		Exact:      counter.Exact(),
	}, nil
}
