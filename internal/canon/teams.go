package canon

// teamAbbreviations maps full franchise names to the three-letter scheme the
// player stats source already uses. Historical aliases (Bobcats, "LA Clippers")
// collapse onto the current abbreviation so full names and abbreviations never
// coexist as distinct join keys.
var teamAbbreviations = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Charlotte Bobcats":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"Los Angeles Clippers":   "LAC",
	"LA Clippers":            "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHX",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

// AbbreviateTeam returns the canonical abbreviation for a full franchise
// name, or the input unchanged when it is already an abbreviation (or an
// unknown name, which then fails the join and is counted upstream).
func AbbreviateTeam(name string) string {
	if abbr, ok := teamAbbreviations[name]; ok {
		return abbr
	}
	return name
}
