package ordering

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section is one product type bucket of the catalogue.
type Section struct {
	Code  string // type code, the upper-cased first letter of the type value
	Name  string // English name used in reports
	Label string // label shown on the public catalogue filter buttons
}

// sections is the type priority table. Position is rank.
var sections = []Section{
	{Code: "S", Name: "Sneakers", Label: "Jordan"},
	{Code: "J", Name: "Jackets", Label: "Camperas"},
	{Code: "H", Name: "Hoodies", Label: "Buzos"},
	{Code: "T", Name: "T-Shirts", Label: "Remeras"},
	{Code: "O", Name: "Other", Label: "Accesorios"},
}

// Sections returns the catalogue sections in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Initial returns the upper-cased first letter of s after trimming spaces,
// or "" when s is blank. Product type codes and gender codes are derived this way.
func Initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// TypeRank returns the display rank of a product type value. Known type codes
// rank by their position in the section table; anything else ranks after them.
func TypeRank(typeValue string) int {
	code := Initial(typeValue)
	for i, s := range sections {
		if s.Code == code {
			return i
		}
	}
	return len(sections)
}

// CompareTypes orders two product type values by section rank.
func CompareTypes(a, b string) int {
	return TypeRank(a) - TypeRank(b)
}
