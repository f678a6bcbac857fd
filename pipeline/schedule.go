package pipeline

import (
	"fmt"
	"time"

	"npp-server/models"
)

// Schedule is the common period grid derived from the configured
// anchor dates. Every anchor opens one fixed 16-day window for the
// accumulated sources; the native-resolution source ignores the
// windows and is filtered by NativeFilterRange instead.
type Schedule struct {
	Periods []models.Period

	// NativeFilterRange spans [first anchor, last anchor + 1 day).
	// The one-day extension past the last anchor closes the open
	// filter interval so the composite published on the last anchor
	// date itself is included. Kept exactly as observed upstream.
	NativeFilterRange models.DateRange
}

// BuildSchedule derives the period grid from the anchor list. It is a
// pure function of its input.
func BuildSchedule(anchors []time.Time) (*Schedule, error) {
	if len(anchors) < 2 {
		return nil, models.NewConfigurationError(
			fmt.Sprintf("need at least 2 period anchors, got %d", len(anchors)))
	}
	for i := 1; i < len(anchors); i++ {
		if !anchors[i].After(anchors[i-1]) {
			return nil, models.NewConfigurationError(
				fmt.Sprintf("period anchors must be strictly increasing: %s does not follow %s",
					anchors[i].Format(models.DateLayout), anchors[i-1].Format(models.DateLayout)))
		}
	}

	periods := make([]models.Period, len(anchors))
	for i, anchor := range anchors {
		periods[i] = models.NewPeriod(anchor)
	}

	last := anchors[len(anchors)-1]
	nativeRange := models.NewDateRange(anchors[0], last.AddDate(0, 0, 1))

	return &Schedule{Periods: periods, NativeFilterRange: nativeRange}, nil
}
