package pagination

const (
	DefaultPage = 1
	DefaultSize = 9
)

// PageSizes are the sizes offered in the page size selector.
var PageSizes = []int{6, 9, 12, 18, 24}

// Pager describes where a listing currently is.
type Pager struct {
	Current       int
	Size          int
	TotalPages    int
	TotalElements int
}

func (p Pager) HasNext() bool {
	return p.TotalPages > 0 && p.Current < p.TotalPages
}

func (p Pager) HasPrevious() bool {
	return p.Current > 1
}

// Clamp bounds page to [1, TotalPages], treating an empty listing as one page.
func (p Pager) Clamp(page int) int {
	last := p.TotalPages
	if last < 1 {
		last = 1
	}
	return max(1, min(page, last))
}

// Next returns the page after Current, or Current if it is the last.
func (p Pager) Next() int {
	if p.HasNext() {
		return p.Current + 1
	}
	return p.Current
}

// Previous returns the page before Current, or Current if it is the first.
func (p Pager) Previous() int {
	if p.HasPrevious() {
		return p.Current - 1
	}
	return p.Current
}

// Range returns the 1-based positions of the first and last element shown
// on the current page.
func (p Pager) Range() (from, to int) {
	from = min((p.Current-1)*p.Size+1, p.TotalElements)
	to = min(p.Current*p.Size, p.TotalElements)
	return from, to
}

func (p Pager) Window() []Token {
	return Window(p.Current, p.TotalPages)
}
