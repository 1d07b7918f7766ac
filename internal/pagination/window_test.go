package pagination

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ",")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{1, 3, "1,2,3"},
		{2, 5, "1,2,3,4,5"},
		{1, 20, "1,2,3,4,…,7"},
		{3, 20, "1,2,3,4,…,9"},
		{20, 20, "1,…,18,19,20"},
		{18, 20, "1,…,16,17,18"},
		{10, 20, "1,9,10,11,…,16"},
		{4, 6, "1,…,2,3,4"},
		// current+6 projects past the last page.
		{17, 20, "1,16,17,18,…,23"},
	}

	for _, tt := range tests {
		got := render(Window(tt.current, tt.total))
		assert.Equal(t, tt.want, got, "Window(%d, %d)", tt.current, tt.total)
	}
}

func TestWindow_NothingForSinglePage(t *testing.T) {
	assert.Empty(t, Window(1, 1))
	assert.Empty(t, Window(5, 1))
	assert.Empty(t, Window(1, 0))
}

func TestWindow_Invariants(t *testing.T) {
	for total := 6; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			tokens := Window(current, total)

			assert.LessOrEqual(t, len(tokens), 6)
			assert.Equal(t, 1, tokens[0].Page)

			seen := map[int]bool{}
			last := 0
			hasCurrent := current == 1
			for _, tok := range tokens {
				if tok.Ellipsis {
					continue
				}
				assert.False(t, seen[tok.Page], "duplicate %d in Window(%d, %d)", tok.Page, current, total)
				assert.Greater(t, tok.Page, last)
				seen[tok.Page] = true
				last = tok.Page
				if tok.Page == current {
					hasCurrent = true
				}
			}
			assert.True(t, hasCurrent, "Window(%d, %d) misses current", current, total)
		}
	}
}

func TestPager(t *testing.T) {
	p := Pager{Current: 2, Size: 9, TotalPages: 3, TotalElements: 25}

	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 1, p.Previous())

	from, to := p.Range()
	assert.Equal(t, 10, from)
	assert.Equal(t, 18, to)

	p.Current = 3
	assert.False(t, p.HasNext())
	assert.Equal(t, 3, p.Next())
	from, to = p.Range()
	assert.Equal(t, 19, from)
	assert.Equal(t, 25, to)
}

func TestPager_Clamp(t *testing.T) {
	p := Pager{TotalPages: 4}
	assert.Equal(t, 1, p.Clamp(-3))
	assert.Equal(t, 4, p.Clamp(99))
	assert.Equal(t, 2, p.Clamp(2))

	assert.Equal(t, 1, Pager{}.Clamp(7))
}

func TestPager_EmptyRange(t *testing.T) {
	from, to := Pager{Current: 1, Size: 9}.Range()
	assert.Zero(t, from)
	assert.Zero(t, to)
	assert.False(t, Pager{Current: 1}.HasNext())
}
