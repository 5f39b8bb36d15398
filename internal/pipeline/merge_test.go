package pipeline

import (
	"testing"

	"github.com/fortuna/delphi/internal/store"
)

func stat(seas, player string, pts float64) store.PlayerSeasonStat {
	return store.PlayerSeasonStat{
		SeasonType: store.SeasonTypeRegular,
		Season:     seas,
		PlayerName: player,
		Points:     pts,
	}
}

func TestMergeFirstWriteWins(t *testing.T) {
	existing := []store.PlayerSeasonStat{
		stat("2021-22", "Nikola Jokic", 27.1),
		stat("2021-22", "Joel Embiid", 30.6),
	}
	// Re-scrape returns a corrupted value for an already-settled key plus a
	// genuinely new row.
	incoming := []store.PlayerSeasonStat{
		stat("2021-22", "Nikola Jokic", 0),
		stat("2022-23", "Nikola Jokic", 24.5),
	}

	merged, appended := Merge(existing, incoming)

	if appended != 1 {
		t.Errorf("appended = %d, want 1", appended)
	}
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	// Existing rows first, original order, original values.
	if merged[0].Points != 27.1 || merged[1].Points != 30.6 {
		t.Errorf("existing values overwritten: %v %v", merged[0].Points, merged[1].Points)
	}
	if merged[2].Season != "2022-23" || merged[2].Points != 24.5 {
		t.Errorf("new row not appended in scrape order: %+v", merged[2])
	}
}

func TestMergeEmptyCases(t *testing.T) {
	rows := []store.PlayerSeasonStat{
		stat("2021-22", "Nikola Jokic", 27.1),
	}

	merged, appended := Merge(rows, nil)
	if len(merged) != 1 || appended != 0 {
		t.Errorf("Merge(E, nil) = %d rows, %d appended; want 1, 0", len(merged), appended)
	}

	merged, appended = Merge(nil, rows)
	if len(merged) != 1 || appended != 1 {
		t.Errorf("Merge(nil, I) = %d rows, %d appended; want 1, 1", len(merged), appended)
	}
}

func TestMergeNoDuplicateKeys(t *testing.T) {
	existing := []store.PlayerSeasonStat{
		stat("2021-22", "Nikola Jokic", 27.1),
		stat("2021-22", "Nikola Jokic", 99),
	}
	incoming := []store.PlayerSeasonStat{
		stat("2022-23", "Nikola Jokic", 24.5),
		stat("2022-23", "Nikola Jokic", 24.5),
	}

	merged, _ := Merge(existing, incoming)

	keys := make(map[string]int)
	for _, row := range merged {
		keys[row.MergeKey()]++
	}
	for key, n := range keys {
		if n > 1 {
			t.Errorf("duplicate composite key %q appears %d times", key, n)
		}
	}
	if merged[0].Points != 27.1 {
		t.Errorf("first write for duplicated key not kept: %v", merged[0].Points)
	}
}

func TestMergeIdempotent(t *testing.T) {
	existing := []store.PlayerSeasonStat{
		stat("2021-22", "Nikola Jokic", 27.1),
	}
	incoming := []store.PlayerSeasonStat{
		stat("2022-23", "Nikola Jokic", 24.5),
	}

	once, _ := Merge(existing, incoming)
	twice, appended := Merge(once, incoming)

	if appended != 0 {
		t.Errorf("re-merging the same scrape appended %d rows", appended)
	}
	if len(twice) != len(once) {
		t.Errorf("re-merge changed row count: %d -> %d", len(once), len(twice))
	}
}
