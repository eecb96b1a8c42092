package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter narrows the items to those matching query. The cursor jumps to
// the best match and returns to its old place once the filter is cleared.
func (l *Level) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	l.Filter = query
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	switch {
	case trimmed != "":
		l.Cursor = max(BestMatchIndex(l.Items, trimmed), 0)
	case prevTrimmed != "":
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
}

// FilterItems returns items whose label fuzzily matches query, falling back
// to a substring match on label or id.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels(items))
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex prefers an exact id or label match, then an id prefix, then
// a label prefix, then the closest fuzzy match.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.ID, trimmed) || strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.ID), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels(items))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}
