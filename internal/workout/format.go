package workout

import (
	"fmt"
	"math"
	"time"
)

// FormatValue renders a metric value for display
func FormatValue(m Metric, v float64) string {
	switch m {
	case MetricDuration:
		return FormatSeconds(v)
	case MetricReps:
		if v == math.Trunc(v) {
			return fmt.Sprintf("%.0f", v)
		}
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatSeconds formats a duration given in seconds
func FormatSeconds(secs float64) string {
	d := time.Duration(secs * float64(time.Second))
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

// FormatProgress renders the change between first and latest values,
// e.g. "+20.0 (+20.0%)"
func FormatProgress(st Stats) string {
	return fmt.Sprintf("%+.1f (%+.1f%%)", st.Progress, st.ProgressPct)
}

// FormatBytes formats a byte count with binary units, e.g. "1.50 MB"
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
