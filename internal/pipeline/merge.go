package pipeline

// Keyed is implemented by rows carrying a composite uniqueness key.
type Keyed interface {
	MergeKey() string
}

// Merge folds a freshly scraped table into the previously persisted one.
// This is a first-write-wins combine: a key already present in existing is
// authoritative and is never overwritten by an incoming row, so a repeated
// re-scrape cannot corrupt settled historical data with a transient bad
// response. Existing rows come first in their original order, then genuinely
// new rows in scrape order. The result carries no duplicate keys.
//
// Merge(existing, nil) returns existing; Merge(nil, incoming) returns
// incoming deduped. The second return value is the number of rows appended.
func Merge[T Keyed](existing, incoming []T) ([]T, int) {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]T, 0, len(existing)+len(incoming))

	for _, row := range existing {
		key := row.MergeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, row)
	}

	appended := 0
	for _, row := range incoming {
		key := row.MergeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, row)
		appended++
	}

	return merged, appended
}
