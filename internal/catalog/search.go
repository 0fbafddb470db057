package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// Match is a search hit. Lower Distance is a better match; 0 means the
// query appears verbatim in the title or description.
type Match struct {
	Category string
	Card     domain.Card
	Distance int
}

// Search finds cards whose title or description resembles query.
// Results are ordered by distance, then by catalog order. A limit <= 0
// returns every hit.
func Search(cat *domain.Catalog, query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	maxDist := max(1, len([]rune(q))/3)

	var matches []Match
	cat.Each(func(category string, card domain.Card) {
		d, ok := distance(q, card, maxDist)
		if !ok {
			return
		}
		matches = append(matches, Match{Category: category, Card: card, Distance: d})
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func distance(q string, card domain.Card, maxDist int) (int, bool) {
	title := strings.ToLower(card.Title)
	if strings.Contains(title, q) || strings.Contains(strings.ToLower(card.Content), q) {
		return 0, true
	}

	best := -1
	for _, word := range strings.Fields(title) {
		d := levenshtein.ComputeDistance(q, word)
		if best < 0 || d < best {
			best = d
		}
	}
	if d := levenshtein.ComputeDistance(q, title); best < 0 || d < best {
		best = d
	}
	if best < 0 || best > maxDist {
		return 0, false
	}
	return best, true
}
