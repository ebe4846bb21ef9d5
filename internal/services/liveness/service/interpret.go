package service

import (
	"fmt"

	dom "liveness/internal/services/liveness/domain"
)

// Interpret turns an outcome into the caller facing verdict
// Pure: the same outcome and mode always give the same verdict
func Interpret(o dom.Outcome, mode dom.Mode) dom.Verdict {
	id := o.SessionID
	switch o.Liveness {
	case dom.DecisionSpoof:
		return dom.Verdict{Text: fmt.Sprintf("%s failed the liveness check.", id)}
	case dom.DecisionReal:
	default:
		return dom.Verdict{Text: fmt.Sprintf("The liveness result for %s could not be determined.", id)}
	}

	if mode == dom.ModePlain {
		return dom.Verdict{Pass: true, Text: fmt.Sprintf("%s is a real person.", id)}
	}
	switch {
	case o.Match == nil:
		// a real face with no match decision is not enough to pass a verify session
		return dom.Verdict{Text: fmt.Sprintf("The liveness result for %s could not be determined: the verify match result is missing.", id)}
	case !*o.Match:
		return dom.Verdict{Text: fmt.Sprintf("%s authentication failed: the verify image is not a match.", id)}
	}
	return dom.Verdict{Pass: true, Text: fmt.Sprintf("%s is a real person.\nThe verify image is a match.", id)}
}
