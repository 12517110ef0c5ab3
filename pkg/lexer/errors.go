package lexer

import (
	"fmt"

	"github.com/praetorian-inc/strscan/pkg/types"
)

// SyntaxError reports input at which no grammar rule matches.
type SyntaxError struct {
	Grammar  string
	Location types.Location // the offending character
	Near     string         // a few characters of context starting at Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: no rule matches at %s (offset %d) near %q",
		e.Grammar, e.Location.Source.Start, e.Location.Offset.Start, e.Near)
}
