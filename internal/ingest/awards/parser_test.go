package awards

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const articleHTML = `<html><body>
<div class="ArticleContent_article__NBhQ8">
	<p>The complete list of winners:</p>
	<p>2023-24 &#8212; Nikola Joki&#263;, Denver Nuggets</p>
	<p>2022-23 &#8212; Joel Embiid, Philadelphia 76ers</p>
	<p>2012-13 &#8212; LeBron James, Miami Heat</p>
	<p>not a winner line</p>
</div>
</body></html>`

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("building document: %v", err)
	}
	return d
}

func TestParseWinners(t *testing.T) {
	winners, rejected := ParseWinners(doc(t, articleHTML))

	if len(winners) != 2 {
		t.Fatalf("len(winners) = %d, want 2: %+v", len(winners), winners)
	}
	if winners[0].Year != 2023 || winners[0].Winner != "Nikola Jokić" {
		t.Errorf("winners[0] = %+v, want 2023 / Nikola Jokić", winners[0])
	}
	if winners[1].Year != 2022 || winners[1].Winner != "Joel Embiid" {
		t.Errorf("winners[1] = %+v, want 2022 / Joel Embiid", winners[1])
	}
	// The 2012-13 line predates the tracked window.
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
}

func TestParseWinnersFallbackSelector(t *testing.T) {
	html := `<html><body><div class="SomethingElse"><p>2021-22 &#8212; Nikola Joki&#263;, Denver Nuggets</p></div></body></html>`
	winners, _ := ParseWinners(doc(t, html))

	if len(winners) != 1 || winners[0].Year != 2021 {
		t.Fatalf("fallback parse failed: %+v", winners)
	}
}

func TestSplitWinnerLine(t *testing.T) {
	tests := []struct {
		text     string
		wantYear string
		wantName string
		wantOK   bool
	}{
		{"2023-24 — Nikola Jokić, Denver Nuggets", "2023", "Nikola Jokić", true},
		{"2022-23 — Joel Embiid, Philadelphia 76ers", "2022", "Joel Embiid", true},
		{"no dash here", "", "", false},
		{"2023-24", "", "", false},
	}

	for _, tt := range tests {
		year, name, ok := splitWinnerLine(tt.text)
		if ok != tt.wantOK {
			t.Errorf("splitWinnerLine(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if year != tt.wantYear || name != tt.wantName {
			t.Errorf("splitWinnerLine(%q) = %q, %q; want %q, %q", tt.text, year, name, tt.wantYear, tt.wantName)
		}
	}
}
