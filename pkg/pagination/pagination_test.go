package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, DefaultLimit},
		{"explicit values", "?skip=20&limit=50", 20, 50},
		{"negative skip resets", "?skip=-5", 0, DefaultLimit},
		{"zero limit resets", "?limit=0", 0, DefaultLimit},
		{"negative limit resets", "?limit=-1", 0, DefaultLimit},
		{"limit capped", "?limit=5000", 0, MaxLimit},
		{"limit at cap", "?limit=1000", 0, MaxLimit},
		{"non-numeric values", "?skip=abc&limit=xyz", 0, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/records"+tt.query, nil)
			params := FromRequest(r)
			if params.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", params.Skip, tt.wantSkip)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", params.Limit, tt.wantLimit)
			}
		})
	}
}
