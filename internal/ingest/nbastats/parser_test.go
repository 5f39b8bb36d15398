package nbastats

import (
	"encoding/json"
	"testing"

	"github.com/fortuna/delphi/internal/store"
)

const leadersPayload = `{
	"resultSet": {
		"name": "LeagueLeaders",
		"headers": ["PLAYER_ID","RANK","PLAYER","TEAM","GP","MIN","FGM","FGA","FG_PCT","FG3M","FG3A","FG3_PCT","FTM","FTA","FT_PCT","OREB","DREB","REB","AST","STL","BLK","TOV","PTS","EFF"],
		"rowSet": [
			[203999,1,"Nikola Jokic","DEN",79,34.6,10.4,17.9,0.583,1.1,3.1,0.359,5.5,6.7,0.817,2.8,9.5,12.4,9.0,1.4,0.9,3.0,26.4,38.2],
			[1629029,2,"Luka Doncic","DAL",70,37.5,11.5,23.6,0.487,4.1,10.6,0.382,6.8,8.7,0.786,0.8,8.4,9.2,9.8,1.4,0.5,4.0,33.9,35.1]
		]
	}
}`

const standingsPayload = `{
	"resultSets": [{
		"name": "Standings",
		"headers": ["LeagueID","SeasonID","TeamID","TeamCity","TeamName","Conference","WinPCT"],
		"rowSet": [
			["00","22023",1610612743,"Denver","Nuggets","West",0.695],
			["00","22023",1610612746,"LA","Clippers","West",0.622]
		]
	}]
}`

func TestParseLeagueLeaders(t *testing.T) {
	var payload leagueLeadersResponse
	if err := json.Unmarshal([]byte(leadersPayload), &payload); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	stats, rejected, err := ParseLeagueLeaders(&payload.ResultSet, "2023-24", store.SeasonTypeRegular)
	if err != nil {
		t.Fatalf("ParseLeagueLeaders: %v", err)
	}
	if rejected != 0 {
		t.Errorf("rejected = %d, want 0", rejected)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	jokic := stats[0]
	if jokic.PlayerID != 203999 || jokic.PlayerName != "Nikola Jokic" || jokic.Team != "DEN" {
		t.Errorf("identity fields wrong: %+v", jokic)
	}
	if jokic.Season != "2023-24" || jokic.SeasonType != store.SeasonTypeRegular {
		t.Errorf("season fields wrong: %+v", jokic)
	}
	if jokic.Points != 26.4 || jokic.Assists != 9.0 || jokic.FGPct != 0.583 {
		t.Errorf("stat fields wrong: %+v", jokic)
	}
}

func TestParseLeagueLeadersMissingColumn(t *testing.T) {
	rs := &ResultSet{
		Headers: []string{"PLAYER_ID", "PLAYER"},
		RowSet:  [][]interface{}{{203999.0, "Nikola Jokic"}},
	}
	if _, _, err := ParseLeagueLeaders(rs, "2023-24", store.SeasonTypeRegular); err == nil {
		t.Error("expected error for payload missing stat columns")
	}
}

func TestParseLeagueLeadersRejectsMalformedRows(t *testing.T) {
	var payload leagueLeadersResponse
	if err := json.Unmarshal([]byte(leadersPayload), &payload); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	payload.ResultSet.RowSet = append(payload.ResultSet.RowSet, []interface{}{203999.0})

	stats, rejected, err := ParseLeagueLeaders(&payload.ResultSet, "2023-24", store.SeasonTypeRegular)
	if err != nil {
		t.Fatalf("ParseLeagueLeaders: %v", err)
	}
	if len(stats) != 2 || rejected != 1 {
		t.Errorf("got %d stats, %d rejected; want 2, 1", len(stats), rejected)
	}
}

func TestParseStandings(t *testing.T) {
	var payload standingsResponse
	if err := json.Unmarshal([]byte(standingsPayload), &payload); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	standings, err := ParseStandings(&payload.ResultSets[0], "2023-24")
	if err != nil {
		t.Fatalf("ParseStandings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("len(standings) = %d, want 2", len(standings))
	}
	if standings[0].Team != "DEN" || standings[0].WinPct != 0.695 {
		t.Errorf("standings[0] = %+v, want DEN 0.695", standings[0])
	}
	// "LA Clippers" must collapse onto the canonical abbreviation.
	if standings[1].Team != "LAC" {
		t.Errorf("standings[1].Team = %q, want LAC", standings[1].Team)
	}
}
