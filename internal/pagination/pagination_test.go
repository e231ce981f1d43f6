package pagination

import (
	"net/http/httptest"
	"testing"
)

// TestParseParams tests query string parsing with defaults and clamping
func TestParseParams(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"Defaults", "/referrals", DefaultPage, DefaultLimit},
		{"Explicit values", "/referrals?page=3&limit=5", 3, 5},
		{"Limit capped", "/referrals?limit=500", DefaultPage, MaxLimit},
		{"Malformed page", "/referrals?page=abc", DefaultPage, DefaultLimit},
		{"Zero page", "/referrals?page=0", DefaultPage, DefaultLimit},
		{"Negative limit", "/referrals?limit=-5", DefaultPage, DefaultLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.url, nil)
			params := ParseParams(req)

			if params.Page != tc.wantPage {
				t.Errorf("Expected page %d, got %d", tc.wantPage, params.Page)
			}
			if params.Limit != tc.wantLimit {
				t.Errorf("Expected limit %d, got %d", tc.wantLimit, params.Limit)
			}
		})
	}
}

// TestCalculateOffset tests page to offset conversion
func TestCalculateOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if offset := p.CalculateOffset(); offset != 20 {
		t.Errorf("Expected offset 20, got %d", offset)
	}

	p = Params{Page: 1, Limit: 20}
	if offset := p.CalculateOffset(); offset != 0 {
		t.Errorf("Expected offset 0, got %d", offset)
	}
}

// TestCalculateMeta tests metadata for edge totals
func TestCalculateMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	meta := p.CalculateMeta(25)

	if meta.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext {
		t.Error("Expected HasNext on page 2 of 3")
	}
	if !meta.HasPrevious {
		t.Error("Expected HasPrevious on page 2")
	}

	// Empty result set still reports one page
	p = Params{Page: 1, Limit: 10}
	meta = p.CalculateMeta(0)
	if meta.TotalPages != 1 {
		t.Errorf("Expected 1 page for empty set, got %d", meta.TotalPages)
	}
	if meta.HasNext || meta.HasPrevious {
		t.Error("Expected no neighbours for empty set")
	}
}
