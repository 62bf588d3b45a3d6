package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	clipboardFlagTypeName            = "clipboard"
	invalidClipboardFlagValueMessage = "invalid clipboard flag value '%s'"
)

var (
	trueClipboardFlagLiterals = map[string]struct{}{
		"":     {},
		"true": {},
		"t":    {},
		"1":    {},
		"yes":  {},
		"y":    {},
	}
	falseClipboardFlagLiterals = map[string]struct{}{
		"false": {},
		"f":     {},
		"0":     {},
		"no":    {},
		"n":     {},
	}
)

func interpretClipboardFlagLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if _, matches := trueClipboardFlagLiterals[normalized]; matches {
		return true, true
	}
	if _, matches := falseClipboardFlagLiterals[normalized]; matches {
		return false, true
	}
	return false, false
}

// clipboardFlagValue accepts --clipboard, --clipboard=true, and
// --clipboard=false spellings so clipboard copy can be switched off without a
// separate negative flag.
type clipboardFlagValue struct {
	target *bool
}

func (value *clipboardFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf(invalidClipboardFlagValueMessage, input)
	}
	booleanValue, recognized := interpretClipboardFlagLiteral(input)
	if !recognized {
		return fmt.Errorf(invalidClipboardFlagValueMessage, input)
	}
	*value.target = booleanValue
	return nil
}

func (value *clipboardFlagValue) String() string {
	if value == nil || value.target == nil {
		return "false"
	}
	if *value.target {
		return "true"
	}
	return "false"
}

func (value *clipboardFlagValue) Type() string {
	return clipboardFlagTypeName
}

// registerClipboardFlag installs the clipboard flag with copy enabled by default.
func registerClipboardFlag(flagSet *pflag.FlagSet, target *bool) {
	if flagSet == nil || target == nil {
		return
	}
	*target = true
	flagSet.Var(&clipboardFlagValue{target: target}, clipboardFlagName, clipboardFlagDescription)
	if lookup := flagSet.Lookup(clipboardFlagName); lookup != nil {
		lookup.NoOptDefVal = "true"
		lookup.DefValue = "true"
	}
}
