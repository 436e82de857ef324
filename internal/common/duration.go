package common

import (
	"fmt"
	"strings"
	"time"
)

var durationUnits = []struct {
	name string
	size time.Duration
}{
	{name: "day", size: 24 * time.Hour},
	{name: "hour", size: time.Hour},
	{name: "minute", size: time.Minute},
	{name: "second", size: time.Second},
}

// FormatDurationRemaining renders d as "1 day, 2 hours, 3 minutes".
// Sub-second remainders are dropped and negative durations read as
// "0 seconds".
func FormatDurationRemaining(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}

	var parts []string
	for _, unit := range durationUnits {
		count := int(d / unit.size)
		if count == 0 {
			continue
		}
		d -= time.Duration(count) * unit.size

		if count == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", unit.name))
		} else {
			parts = append(parts, fmt.Sprintf("%d %ss", count, unit.name))
		}
	}

	return strings.Join(parts, ", ")
}
