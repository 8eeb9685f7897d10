// Package arbiter decides whether an incoming position sample is accepted
// relative to the previously accepted one.
package arbiter

import (
	"time"

	"pettrack/internal/core/geo"
	"pettrack/internal/core/model"
)

// Verdict describes what an accepted sample is allowed to do.
//
// Every accepted sample enters the route history. UpdateDisplay is only set
// when the sample's source priority is at least that of the previously
// accepted sample, so a manual or passive correction cannot silently
// overwrite a high-confidence satellite fix while still being recorded for
// completeness.
type Verdict struct {
	UpdateDisplay bool
}

// Evaluate applies the acceptance rules in order: coordinate range check,
// minimum-interval rate limit against the last accepted sample (regardless
// of source), then priority comparison for display substitution.
//
// Rejections come back as model.ErrInvalidCoordinate or model.ErrRateLimited.
// Rate limiting compares timestamps, not wall clock; a sample not newer than
// last by at least minInterval is rejected, which also keeps the accepted
// stream's timestamps monotonically non-decreasing.
func Evaluate(sample, last *model.PositionSample, minInterval time.Duration) (Verdict, error) {
	if !geo.ValidCoordinate(sample.Latitude, sample.Longitude) {
		return Verdict{}, model.ErrInvalidCoordinate
	}

	if last != nil {
		if sample.Timestamp.Sub(last.Timestamp) < minInterval {
			return Verdict{}, model.ErrRateLimited
		}
		return Verdict{UpdateDisplay: sample.Priority() >= last.Priority()}, nil
	}

	return Verdict{UpdateDisplay: true}, nil
}
