// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"strings"

	"github.com/zellyn/derethfs/sector"
)

// resolveDialect maps a --dialect flag value (falling back to the
// config default, then to filename-based guessing) to a sector
// dialect. The spec treats dialect as something "the caller knows"
// rather than something auto-detected from file contents, so guessing
// here is a CLI convenience, not a format heuristic.
func resolveDialect(flagValue, filename string) (sector.Dialect, error) {
	value := flagValue
	if value == "" && cfg != nil {
		value = cfg.Dialect
	}

	switch strings.ToLower(value) {
	case "portal":
		return sector.DialectPortal, nil
	case "cell":
		return sector.DialectCell, nil
	case "", "auto":
		lower := strings.ToLower(filename)
		if strings.Contains(lower, "cell") {
			return sector.DialectCell, nil
		}
		return sector.DialectPortal, nil
	default:
		return 0, fmt.Errorf("unknown --dialect %q: want \"portal\" or \"cell\"", value)
	}
}
