// Package ordering holds the display orderings shared by reports and the
// catalogue renderer: size labels and product type sections.
//
// Orderings here are a presentation concern only. Stored size labels and type
// values are free-form strings and are never rewritten to match these tables.
package ordering

import (
	"slices"
	"strconv"
	"strings"
)

// OneSize is the "one size fits all" label. It always sorts last.
const OneSize = "Único"

// namedSizes ranks the letter sizes in wearing order.
var namedSizes = map[string]int{
	"XS": 0,
	"S":  1,
	"M":  2,
	"L":  3,
	"XL": 4,
}

type sizeGroup int

const (
	groupNumeric sizeGroup = iota
	groupNamed
	groupOther
	groupOneSize
)

// sizeKey is the sort key of a size label: group first, then rank within the
// group, then the raw label as a final tie-break.
type sizeKey struct {
	group sizeGroup
	rank  int
	label string
}

func keyOf(label string) sizeKey {
	if label == OneSize {
		return sizeKey{group: groupOneSize, label: label}
	}
	if rank, ok := namedSizes[label]; ok {
		return sizeKey{group: groupNamed, rank: rank, label: label}
	}
	if isDigits(label) {
		if n, err := strconv.Atoi(label); err == nil {
			return sizeKey{group: groupNumeric, rank: n, label: label}
		}
	}
	return sizeKey{group: groupOther, label: label}
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CompareSizes orders two size labels for display.
//
// Numeric labels come first in numeric order ("2" before "10"), then the
// letter sizes XS, S, M, L, XL, then any other label in lexical order, and
// finally "Único". Returns a negative number when a sorts before b, zero when
// they are the same label, and a positive number otherwise.
func CompareSizes(a, b string) int {
	ka, kb := keyOf(a), keyOf(b)
	if ka.group != kb.group {
		return int(ka.group) - int(kb.group)
	}
	if ka.rank != kb.rank {
		if ka.rank < kb.rank {
			return -1
		}
		return 1
	}
	return strings.Compare(ka.label, kb.label)
}

// SortSizes returns a sorted copy of sizes. The input slice is not modified.
func SortSizes(sizes []string) []string {
	sorted := slices.Clone(sizes)
	slices.SortStableFunc(sorted, CompareSizes)
	return sorted
}
