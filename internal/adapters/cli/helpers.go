package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
)

// parseMaterials converts --material flag values into material instances.
// Each value is CATEGORY:QUALITY or CATEGORY:QUALITY:ID, e.g.
// METAL:UNCOMMON or GEM:RARE:flawless-ruby-7.
func parseMaterials(values []string) ([]material.Instance, error) {
	instances := make([]material.Instance, 0, len(values))

	for _, value := range values {
		parts := strings.SplitN(value, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid material %q: expected CATEGORY:QUALITY[:ID]", value)
		}

		category, err := material.ParseCategory(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid material %q: %w", value, err)
		}

		quality, err := material.ParseQuality(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid material %q: %w", value, err)
		}

		id := ""
		if len(parts) == 3 {
			id = parts[2]
		}

		instances = append(instances, material.Instance{
			ID:       id,
			Category: category,
			Quality:  quality,
		})
	}

	return instances, nil
}

// truncate shortens a string for table display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// formatDuration renders a duration without sub-second noise
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

// formatProgress renders a 0..1 progress fraction as a percentage
func formatProgress(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
