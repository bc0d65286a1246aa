// Package page slices query results into contiguous pages.
package page

// Page is a contiguous sub-range of a result sequence.
type Page struct {
	Items   []any
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// Apply selects the [offset, offset+limit) window of result. A result
// that is not already a sequence is wrapped in a single-element
// sequence first. A negative offset counts as zero; a non-positive
// limit means everything from offset. An offset at or past the end
// yields an empty page, not an error.
func Apply(result any, offset, limit int) Page {
	items := asSequence(result)
	total := len(items)

	if offset < 0 {
		offset = 0
	}

	switch {
	case offset >= total:
		items = []any{}
	case limit <= 0:
		items = items[offset:]
	case offset+limit > total:
		items = items[offset:]
	default:
		items = items[offset : offset+limit]
	}

	return Page{
		Items:   items,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasMore: limit > 0 && offset+limit < total,
	}
}

func asSequence(result any) []any {
	switch current := result.(type) {
	case nil:
		return []any{}
	case []any:
		return current
	case []map[string]any:
		items := make([]any, 0, len(current))
		for _, item := range current {
			items = append(items, item)
		}
		return items
	default:
		return []any{current}
	}
}
