package wealth

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeName returns the comparison form of a name: lower case with
// collapsed whitespace.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MerchantResolver resolves the merchant identity of transactions.
type MerchantResolver struct {
	// Overrides maps a raw description to a canonical display name.
	Overrides map[string]string
	// Identities maps an upper cased raw description to a merchant name.
	Identities map[string]string
}

// Resolve returns the merchant identity of t, trying in order: its canonical
// name, the override map, the identity map, the cleaned description, and
// finally the raw description.
func (r MerchantResolver) Resolve(t Transaction) string {
	if name := strings.TrimSpace(t.CanonicalName); name != "" {
		return name
	}
	if name, ok := r.Overrides[t.Description]; ok && name != "" {
		return name
	}
	if name, ok := r.Identities[strings.ToUpper(strings.TrimSpace(t.Description))]; ok && name != "" {
		return name
	}
	if name := CleanMerchantName(t.Description); name != "" {
		return name
	}
	return t.Description
}

// paymentPrefixes are the noise prefixes banks add in front of merchant names.
var paymentPrefixes = []string{
	"CARD PAYMENT TO ",
	"PAYMENT TO ",
	"DIRECT DEBIT ",
	"CONTACTLESS ",
	"PAYPAL *",
	"SQ *",
	"TST* ",
	"POS ",
	"DD ",
	"CB ",
	"PRLV ",
}

// CleanMerchantName extracts a readable merchant name from a raw statement
// description: payment prefixes and reference tokens (anything carrying a
// digit, or a '#') are removed and the rest is title cased.
// It returns "" when nothing is left.
func CleanMerchantName(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for trimmed := true; trimmed; {
		trimmed = false
		for _, p := range paymentPrefixes {
			if strings.HasPrefix(s, p) {
				s, trimmed = strings.TrimSpace(s[len(p):]), true
			}
		}
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '*' || r == '/'
	})
	kept := tokens[:0]
	for _, tok := range tokens {
		if strings.ContainsAny(tok, "0123456789#") {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return ""
	}
	// a Caser is stateful, it cannot be shared between goroutines.
	return cases.Title(language.English).String(strings.ToLower(strings.Join(kept, " ")))
}
