package service

import (
	"fmt"
	"strconv"
	"strings"
)

// letterTypes maps the short type abbreviation used inside letter codes to
// the Persian display label shown to operators.
var letterTypes = map[string]string{
	"FIN": "مالی",
	"ADM": "اداری",
	"HR":  "پرسنلی",
	"GEN": "عمومی",
}

// DefaultLetterTypeAbbr is the fallback for unknown type selectors.
const DefaultLetterTypeAbbr = "GEN"

// ResolveLetterType accepts either a type abbreviation or a display label and
// returns the (abbreviation, label) pair. Unknown selectors fall back to the
// generic type.
func ResolveLetterType(selector string) (string, string) {
	selector = strings.TrimSpace(selector)
	if label, ok := letterTypes[strings.ToUpper(selector)]; ok {
		return strings.ToUpper(selector), label
	}
	for abbr, label := range letterTypes {
		if label == selector {
			return abbr, label
		}
	}
	return DefaultLetterTypeAbbr, letterTypes[DefaultLetterTypeAbbr]
}

// LetterTypeLabels returns the display labels of all known letter types.
func LetterTypeLabels() []string {
	labels := make([]string, 0, len(letterTypes))
	for _, abbr := range []string{"FIN", "ADM", "HR", "GEN"} {
		labels = append(labels, letterTypes[abbr])
	}
	return labels
}

// CodePrefix builds the bucket prefix shared by all letters of one company,
// type and Jalali year, e.g. "NGRR-FIN-1403-".
func CodePrefix(companyAbbr, typeAbbr string, year int) string {
	return fmt.Sprintf("%s-%s-%d-", companyAbbr, typeAbbr, year)
}

// NextSequence derives the next sequence number for a bucket from the codes
// already persisted under its prefix: one more than the highest parseable
// numeric suffix, or 1 for an empty bucket. Codes whose suffix is not a plain
// number are skipped rather than failing the allocation.
func NextSequence(prefix string, codes []string) int {
	max := 0
	for _, code := range codes {
		suffix, ok := strings.CutPrefix(code, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// FormatCode renders the canonical letter code with a three-digit zero-padded
// sequence number.
func FormatCode(prefix string, sequence int) string {
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

var (
	asciiDigits   = "0123456789"
	persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")
)

// ToPersianDigits replaces every ASCII digit with the corresponding Persian
// digit glyph. It is a pure character substitution, nothing else changes.
func ToPersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToASCIIDigits is the inverse substitution, restoring ASCII digits from
// Persian glyphs. Round-tripping a string through ToPersianDigits and back is
// the identity for digit characters.
func ToASCIIDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		replaced := false
		for i, p := range persianDigits {
			if r == p {
				b.WriteByte(asciiDigits[i])
				replaced = true
				break
			}
		}
		if !replaced {
			b.WriteRune(r)
		}
	}
	return b.String()
}
