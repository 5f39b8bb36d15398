package season

import (
	"fmt"
	"testing"
	"time"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2023, "2023-24"},
		{2013, "2013-14"},
		{1999, "1999-00"},
		{2099, "2099-00"},
		{2024, "2024-25"},
	}

	for _, tt := range tests {
		if got := Label(tt.year); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestLabelPattern(t *testing.T) {
	for year := 2013; year <= 2099; year++ {
		next := (year + 1) % 100
		want := fmt.Sprintf("%d-%02d", year, next)
		if got := Label(year); got != want {
			t.Fatalf("Label(%d) = %q, want %q", year, got, want)
		}
	}
}

func TestParseStartYear(t *testing.T) {
	tests := []struct {
		token   string
		want    int
		wantErr bool
	}{
		{"2023", 2023, false},
		{" 2015 ", 2015, false},
		{"2023-24", 2023, false},
		{"2012", 0, true},
		{"1999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStartYear(tt.token)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStartYear(%q) expected error, got %d", tt.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStartYear(%q) unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStartYear(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestStartYear(t *testing.T) {
	got, err := StartYear("2021-22")
	if err != nil {
		t.Fatalf("StartYear: %v", err)
	}
	if got != 2021 {
		t.Errorf("StartYear(2021-22) = %d, want 2021", got)
	}

	if _, err := StartYear("2021"); err == nil {
		t.Error("StartYear(2021) expected error for bare year")
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC)
	got := Since(now)
	want := []string{"2013-14", "2014-15", "2015-16"}
	if len(got) != len(want) {
		t.Fatalf("Since() returned %d labels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Since()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
