package workout

import (
	"fmt"
	"strings"
)

// Metric identifies which column of a set is charted
type Metric int

const (
	MetricAuto Metric = iota
	MetricWeight
	MetricReps
	MetricDuration
	MetricDistance
)

// metricCount is the number of concrete (non-auto) metrics
const metricCount = 4

// ConcreteMetrics lists the metrics a set can carry, in auto-resolution order
var ConcreteMetrics = []Metric{MetricWeight, MetricDuration, MetricDistance, MetricReps}

// ParseMetric converts a config or flag value into a Metric
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MetricAuto, nil
	case "weight":
		return MetricWeight, nil
	case "reps":
		return MetricReps, nil
	case "duration", "time", "seconds":
		return MetricDuration, nil
	case "distance":
		return MetricDistance, nil
	}
	return MetricAuto, fmt.Errorf("unknown metric %q (want auto, weight, reps, duration or distance)", s)
}

func (m Metric) String() string {
	switch m {
	case MetricWeight:
		return "weight"
	case MetricReps:
		return "reps"
	case MetricDuration:
		return "duration"
	case MetricDistance:
		return "distance"
	default:
		return "auto"
	}
}

// Title returns the metric name as shown in chart captions
func (m Metric) Title() string {
	switch m {
	case MetricWeight:
		return "Weight"
	case MetricReps:
		return "Reps"
	case MetricDuration:
		return "Duration"
	case MetricDistance:
		return "Distance"
	default:
		return "Auto"
	}
}

// index maps a concrete metric to its slot in a Set
func (m Metric) index() int {
	switch m {
	case MetricWeight:
		return 0
	case MetricReps:
		return 1
	case MetricDuration:
		return 2
	case MetricDistance:
		return 3
	}
	return -1
}
