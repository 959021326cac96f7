// Package pagination slices feed queries into fixed-size pages.
package pagination

// DefaultPageSize is the number of posts shown on every feed page.
const DefaultPageSize = 10

// Page describes one resolved page of a collection of Count items.
// Number is always within [1, NumPages] — out-of-range requests are
// clamped to the nearest valid page instead of failing.
type Page struct {
	Number   int   `json:"number"`
	Size     int   `json:"size"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
}

// Paginate resolves a requested page number against a total item count.
// A non-positive size falls back to DefaultPageSize.
func Paginate(count int64, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	numPages := int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		Size:     size,
		NumPages: numPages,
		Count:    count,
	}
}

// Offset is the number of items to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit is the maximum number of items on this page.
func (p Page) Limit() int {
	return p.Size
}

// Len is the actual number of items on this page.
func (p Page) Len() int {
	remaining := p.Count - int64(p.Offset())
	if remaining < 0 {
		return 0
	}
	if remaining > int64(p.Size) {
		return p.Size
	}
	return int(remaining)
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

// HasPrevious reports whether an earlier page exists.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}
