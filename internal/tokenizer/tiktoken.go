package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

type tiktokenCounter struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

func (counter tiktokenCounter) Name() string {
	return counter.encodingName
}

func (counter tiktokenCounter) Exact() bool {
	return true
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
