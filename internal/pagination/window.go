package pagination

import "strconv"

// Ellipsis is the label rendered for a gap in the page window.
const Ellipsis = "…"

const (
	maxTokens     = 6
	compactPages  = 5
	edgeThreshold = 3
	projection    = 6
)

// Token is one entry of a page window: either a page number or a gap.
type Token struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func page(n int) Token { return Token{Page: n} }

var gap = Token{Ellipsis: true}

func (t Token) String() string {
	if t.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(t.Page)
}

// Window returns the page links to render for current out of total pages.
// Nothing is rendered for a single page. Up to five pages are listed in
// full; beyond that a six-token window is chosen by where current sits.
//
// The trailing link of the start and middle windows is current+6, which can
// point past total on large sets. Callers rely on that exact output.
func Window(current, total int) []Token {
	if total <= 1 {
		return nil
	}

	if total <= compactPages {
		tokens := make([]Token, 0, total)
		for i := 1; i <= total; i++ {
			tokens = append(tokens, page(i))
		}
		return tokens
	}

	var tokens []Token
	switch {
	case current <= edgeThreshold:
		tokens = []Token{page(1), page(2), page(3), page(4), gap, page(current + projection)}
	case current >= total-2:
		tokens = []Token{page(1), gap, page(current - 2), page(current - 1), page(current)}
	default:
		tokens = []Token{page(1), page(current - 1), page(current), page(current + 1), gap, page(current + projection)}
	}

	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	return tokens
}
