package rule

import (
	"math"
	"strconv"
)

// formatFloat renders an integer-valued continuous number without a
// decimal point, and anything else with standard decimal notation —
// matching the text-dump contract.
func formatFloat(f float64) string {
	if math.Floor(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
