package view

// UpsertHead merges item into list by id: an existing entry is replaced in
// place, preserving the collection's order; an unmatched id is prepended,
// matching newest-first display contracts. Merging the same record twice is
// idempotent and replaces every field of the prior entry.
func UpsertHead[T any](list []T, item T, idOf func(T) string) []T {
	id := idOf(item)
	for i := range list {
		if idOf(list[i]) == id {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = item
			return out
		}
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

// UpsertTail behaves like UpsertHead but appends unmatched ids, for views
// whose display order is insertion order.
func UpsertTail[T any](list []T, item T, idOf func(T) string) []T {
	id := idOf(item)
	for i := range list {
		if idOf(list[i]) == id {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = item
			return out
		}
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// PatchByID applies patch to the entry with the given id, returning a new
// slice. Entries other than the match are untouched; a missing id returns
// the list unchanged.
func PatchByID[T any](list []T, id string, idOf func(T) string, patch func(T) T) []T {
	for i := range list {
		if idOf(list[i]) == id {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = patch(out[i])
			return out
		}
	}
	return list
}

// RemoveByID drops the entry with the given id, preserving order.
func RemoveByID[T any](list []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(list))
	for i := range list {
		if idOf(list[i]) == id {
			continue
		}
		out = append(out, list[i])
	}
	return out
}
