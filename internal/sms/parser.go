// Package sms extracts payment details from free-text bank alert messages.
//
// The input is whatever a third-party SMS relay forwards from the bank.
// Amount patterns are tried in priority order; the broad digit-run fallback
// can misfire on phone numbers or dates embedded in the text, which the
// caller contains with an amount-equality check against the matched order.
package sms

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "ORLOGO: 150,000 MNT" — labeled incoming-amount pattern
	labeledAmountRe = regexp.MustCompile(`(?i)ORLOGO:\s*([\d,.]+)\s*MNT`)
	// "150,000 MNT" — bare number with currency code
	bareAmountRe = regexp.MustCompile(`(?i)([\d,.]+)\s*MNT`)
	// any digit run, last resort
	digitRunRe = regexp.MustCompile(`([\d,]+)`)
	// "Guilgeenii utga: <narrative>" up to end of string, period or comma
	narrativeRe = regexp.MustCompile(`(?i)Guilgeenii utga:\s*(.+?)(?:\s*$|\.|,)`)
)

// Parsed is the result of a best-effort parse of one SMS body.
type Parsed struct {
	// Amount is nil when no numeric pattern matched.
	Amount *float64
	// ReferenceText is the transaction narrative if labeled, otherwise the
	// whole message body so matching degrades to a raw substring search.
	ReferenceText string
}

// Parse extracts the transferred amount and the transaction narrative from
// raw SMS text. It is a pure function with no side effects.
func Parse(text string) Parsed {
	parsed := Parsed{ReferenceText: text}

	var raw string
	if m := labeledAmountRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := bareAmountRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := digitRunRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	}

	if raw != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
			parsed.Amount = &v
		}
	}

	if m := narrativeRe.FindStringSubmatch(text); m != nil {
		parsed.ReferenceText = strings.TrimSpace(m[1])
	}

	return parsed
}
