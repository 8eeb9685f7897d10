package arbiter

import (
	"errors"
	"testing"
	"time"

	"pettrack/internal/core/model"
)

func sample(lat, lon float64, source model.Source, ts time.Time) *model.PositionSample {
	return model.NewPositionSample(lat, lon, source, ts)
}

func TestEvaluate(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	interval := 30 * time.Second

	tests := []struct {
		name        string
		sample      *model.PositionSample
		last        *model.PositionSample
		wantErr     error
		wantDisplay bool
	}{
		{
			name:        "first sample accepted and displayed",
			sample:      sample(52.52, 13.405, model.SourceSatellite, base),
			wantDisplay: true,
		},
		{
			name:    "latitude out of range",
			sample:  sample(95, 0, model.SourceSatellite, base),
			wantErr: model.ErrInvalidCoordinate,
		},
		{
			name:    "longitude out of range",
			sample:  sample(0, 181, model.SourceSatellite, base),
			wantErr: model.ErrInvalidCoordinate,
		},
		{
			name:    "epsilon under the interval rejected",
			sample:  sample(52.52, 13.406, model.SourceSatellite, base.Add(interval-time.Millisecond)),
			last:    sample(52.52, 13.405, model.SourceSatellite, base),
			wantErr: model.ErrRateLimited,
		},
		{
			name:        "exactly the interval accepted",
			sample:      sample(52.52, 13.406, model.SourceSatellite, base.Add(interval)),
			last:        sample(52.52, 13.405, model.SourceSatellite, base),
			wantDisplay: true,
		},
		{
			name:        "epsilon over the interval accepted",
			sample:      sample(52.52, 13.406, model.SourceSatellite, base.Add(interval+time.Millisecond)),
			last:        sample(52.52, 13.405, model.SourceSatellite, base),
			wantDisplay: true,
		},
		{
			name:    "older than last accepted rejected",
			sample:  sample(52.52, 13.406, model.SourceSatellite, base.Add(-time.Hour)),
			last:    sample(52.52, 13.405, model.SourceSatellite, base),
			wantErr: model.ErrRateLimited,
		},
		{
			name:    "high priority source not exempt from rate limit",
			sample:  sample(52.52, 13.406, model.SourceSatellite, base.Add(time.Second)),
			last:    sample(52.52, 13.405, model.SourceManual, base),
			wantErr: model.ErrRateLimited,
		},
		{
			name:        "manual after satellite recorded but not displayed",
			sample:      sample(52.52, 13.406, model.SourceManual, base.Add(time.Minute)),
			last:        sample(52.52, 13.405, model.SourceSatellite, base),
			wantDisplay: false,
		},
		{
			name:        "satellite after network displayed",
			sample:      sample(52.52, 13.406, model.SourceSatellite, base.Add(time.Minute)),
			last:        sample(52.52, 13.405, model.SourceNetwork, base),
			wantDisplay: true,
		},
		{
			name:        "equal priority displayed",
			sample:      sample(52.52, 13.406, model.SourceNetwork, base.Add(time.Minute)),
			last:        sample(52.52, 13.405, model.SourceNetwork, base),
			wantDisplay: true,
		},
		{
			name:        "unknown source never displaces a fix",
			sample:      sample(52.52, 13.406, model.SourceUnknown, base.Add(time.Minute)),
			last:        sample(52.52, 13.405, model.SourcePassive, base),
			wantDisplay: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := Evaluate(tt.sample, tt.last, interval)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if verdict.UpdateDisplay != tt.wantDisplay {
				t.Errorf("UpdateDisplay = %v, want %v", verdict.UpdateDisplay, tt.wantDisplay)
			}
		})
	}
}

func TestSourcePriorities(t *testing.T) {
	order := []model.Source{
		model.SourceUnknown,
		model.SourceManual,
		model.SourcePassive,
		model.SourceNetwork,
		model.SourceSatellite,
	}
	for i := 1; i < len(order); i++ {
		if order[i].Priority() <= order[i-1].Priority() {
			t.Errorf("%s priority %d should exceed %s priority %d",
				order[i], order[i].Priority(), order[i-1], order[i-1].Priority())
		}
	}
	if model.ParseSource("bogus") != model.SourceUnknown {
		t.Error("unrecognized source tag should parse as unknown")
	}
}
