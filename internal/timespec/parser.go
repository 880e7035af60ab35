package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/fily/internal/ledger"
)

// Parse parses a date specification into a calendar date.
// Supports three formats:
//   - ISO calendar dates: "2024-11-02"
//   - "today" and "yesterday"
//   - Day offsets: "7d" means seven days before today
//
// Relative specifications are resolved against now.
func Parse(spec string, now time.Time) (ledger.CalendarDate, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return ledger.CalendarDate{}, fmt.Errorf("empty date specification")
	}

	today := ledger.DateOf(now)
	switch spec {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if days, ok := strings.CutSuffix(spec, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n >= 0 {
			return today.AddDays(-n), nil
		}
	}

	if d, err := time.Parse(ledger.DateLayout, spec); err == nil {
		return ledger.DateOf(d), nil
	}

	return ledger.CalendarDate{}, fmt.Errorf("invalid date specification: %s (use YYYY-MM-DD, 'today', 'yesterday' or a day count like '30d')", spec)
}

// ParseRange parses the --from and --to flags into an inclusive date range.
// An empty --to means today.
//
// Validates that from is not after to.
func ParseRange(from, to string, now time.Time) (ledger.CalendarDate, ledger.CalendarDate, error) {
	start, err := Parse(from, now)
	if err != nil {
		return ledger.CalendarDate{}, ledger.CalendarDate{}, fmt.Errorf("invalid --from: %w", err)
	}

	end := ledger.DateOf(now)
	if to != "" {
		end, err = Parse(to, now)
		if err != nil {
			return ledger.CalendarDate{}, ledger.CalendarDate{}, fmt.Errorf("invalid --to: %w", err)
		}
	}

	if end.Before(start) {
		return ledger.CalendarDate{}, ledger.CalendarDate{}, fmt.Errorf("--from must not be after --to")
	}

	return start, end, nil
}
