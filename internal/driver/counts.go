package driver

import (
	"strconv"

	"umlts/internal/diag"
)

func countSeverities(r *FileResult) (errors, warnings int) {
	if r == nil || r.Bag == nil {
		return 0, 0
	}
	errors, warnings = r.Bag.Dropped()
	for _, d := range r.Bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errors++
		case d.Severity == diag.SevWarning:
			warnings++
		}
	}
	return errors, warnings
}

func itoa(n int) string { return strconv.Itoa(n) }
