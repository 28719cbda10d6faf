package domain

// Page is one slice of an in-memory result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices all into pages of size, 1-based. Pages past the end are
// empty; page numbers below 1 are treated as 1.
func Paginate[T any](all []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	out := Page[T]{Items: []T{}, Page: page}
	if size <= 0 || len(all) == 0 {
		return out
	}
	out.TotalPages = (len(all) + size - 1) / size
	start := (page - 1) * size
	if start >= len(all) {
		return out
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	out.Items = append(out.Items, all[start:end]...)
	return out
}
