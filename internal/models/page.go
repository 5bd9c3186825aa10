package models

// Page is an optional offset/size pagination window. The zero value
// means "no pagination": the full result set in one unbounded page.
type Page struct {
	Limit  int
	Offset int
	set    bool
}

// NewPage builds a window from the from/size query pair. Both must be
// supplied together or both omitted; from is a zero-based offset, the
// effective page is from/size (integer division).
func NewPage(from, size *int) (Page, error) {
	if (from == nil) != (size == nil) {
		return Page{}, ErrInvalidPagination
	}
	if from == nil {
		return Page{}, nil
	}
	if *from < 0 || *size <= 0 {
		return Page{}, ErrInvalidPagination
	}
	page := *from / *size
	return Page{Limit: *size, Offset: page * *size, set: true}, nil
}

func (p Page) Set() bool { return p.set }
