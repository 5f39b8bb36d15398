package awards

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/delphi/internal/season"
	"github.com/fortuna/delphi/internal/store"
)

// articleSelector matches the award article body. The class suffix is a
// build hash and has been stable for years; the fallback scans every
// paragraph when it rotates.
const articleSelector = "div[class^='ArticleContent_article']"

// ParseWinners extracts (year, winner) records from the rendered award
// article. Lines look like "2023-24 — Nikola Jokić, Denver Nuggets". Years
// that do not parse, or that predate the tracked window, are rejected and
// counted rather than silently dropped.
func ParseWinners(doc *goquery.Document) ([]store.AwardWinner, int) {
	paragraphs := doc.Find(articleSelector + " p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}

	var winners []store.AwardWinner
	rejected := 0
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" || !strings.Contains(text, "-") {
			return
		}

		yearToken, winner, ok := splitWinnerLine(text)
		if !ok {
			return
		}

		year, err := season.ParseStartYear(yearToken)
		if err != nil {
			rejected++
			return
		}
		winners = append(winners, store.AwardWinner{Year: year, Winner: winner})
	})

	return winners, rejected
}

// splitWinnerLine pulls the season start year and winner name out of one
// article line. The left side of the first dash carries the year; the right
// side carries the name up to the first comma, after the dash runes and any
// leading ordinal the source prints.
func splitWinnerLine(text string) (yearToken, winner string, ok bool) {
	left, right, found := strings.Cut(text, "-")
	if !found {
		return "", "", false
	}

	leftFields := strings.Fields(left)
	if len(leftFields) == 0 {
		return "", "", false
	}
	yearToken = leftFields[0]

	rightFields := strings.Fields(right)
	if len(rightFields) < 2 {
		return "", "", false
	}
	// First field is the tail of the season label ("24" in "2023-24").
	name := strings.Join(rightFields[1:], " ")
	name, _, _ = strings.Cut(name, ",")
	name = strings.TrimSpace(strings.ReplaceAll(name, "—", ""))
	if name == "" {
		return "", "", false
	}

	return yearToken, name, true
}
