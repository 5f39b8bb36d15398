package canon

import "testing"

func TestFormatPlayerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nikola jokic", "Nikola Jokić"},
		{"Nikola Jokic", "Nikola Jokić"},
		{"Nikola Jokić", "Nikola Jokić"},
		{"luka doncic", "Luka Dončić"},
		{"joel embiid", "Joel Embiid"},
		{"GIANNIS ANTETOKOUNMPO", "Giannis Antetokounmpo"},
		{"", ""},
		{"  shai   gilgeous-alexander ", "Shai Gilgeous-alexander"},
	}

	for _, tt := range tests {
		if got := FormatPlayerName(tt.in); got != tt.want {
			t.Errorf("FormatPlayerName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbbreviateTeam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Denver Nuggets", "DEN"},
		{"Charlotte Bobcats", "CHA"},
		{"Charlotte Hornets", "CHA"},
		{"LA Clippers", "LAC"},
		{"Los Angeles Clippers", "LAC"},
		{"GSW", "GSW"},
		{"Seattle SuperSonics", "Seattle SuperSonics"},
	}

	for _, tt := range tests {
		if got := AbbreviateTeam(tt.in); got != tt.want {
			t.Errorf("AbbreviateTeam(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
