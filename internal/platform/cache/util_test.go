package cache

import (
	"testing"
	"time"
)

func TestTimeUntilNextRefresh(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load America/New_York timezone: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"before refresh", time.Date(2024, 6, 3, 5, 30, 0, 0, ny), 30 * time.Minute},
		{"exactly at refresh", time.Date(2024, 6, 3, 6, 0, 0, 0, ny), 24 * time.Hour},
		{"after refresh", time.Date(2024, 6, 3, 18, 0, 0, 0, ny), 12 * time.Hour},
		{"utc input", time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), time.Hour},
		// clocks go forward on 2024-03-10, so that night is one hour shorter
		{"spring forward", time.Date(2024, 3, 9, 12, 0, 0, 0, ny), 17 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TimeUntilNextRefresh(tt.now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTimeUntilNextRefresh_AlwaysWithinADay(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 96; i++ {
		d := TimeUntilNextRefresh(start.Add(time.Duration(i) * 17 * time.Minute))
		if d <= 0 || d > 25*time.Hour {
			t.Errorf("iteration %d: unexpected duration %v", i, d)
		}
	}
}
