package diff

import (
	"fmt"
	"time"
)

// AbsentDisplay is shown for values that are not set in a snapshot. An
// explicit placeholder keeps the preview table readable; empty cells read as
// rendering bugs.
const AbsentDisplay = "Not set"

// formatBytes renders a byte count with two decimals in binary units, the
// format the desktop UI has always shown ("2.35 MB").
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatTimestamp renders an ISO-8601 timestamp as a local date-time. Values
// that do not parse are shown as-is; the engine never fails on bad input.
func formatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// countLabel renders list values as a count ("12 files"), which is all the
// preview table has room for.
func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
