package pagination

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Page is one slice of a list plus the numbers the page controls need.
type Page[T any] struct {
	Items       []T        `json:"items"`
	Page        int        `json:"page"`
	PageSize    int        `json:"pageSize"`
	TotalItems  int        `json:"totalItems"`
	TotalPages  int        `json:"totalPages"`
	PageNumbers []PageItem `json:"pageNumbers"`
}

// Paginate returns items[(page-1)*pageSize : page*pageSize].
// currentPage is clamped into [1, max(totalPages, 1)]; pageSize <= 0 puts everything on one page.
func Paginate[T any](items []T, pageSize, currentPage int) Page[T] {
	total := len(items)
	if pageSize <= 0 {
		pageSize = total
	}

	totalPages := 1
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	visible := make([]T, end-start)
	copy(visible, items[start:end])

	return Page[T]{
		Items:       visible,
		Page:        currentPage,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(currentPage, totalPages),
	}
}

// PageItem is a page number, or an ellipsis when Number is zero.
type PageItem struct {
	Number int
}

var Ellipsis = PageItem{}

func (p PageItem) IsEllipsis() bool { return p.Number == 0 }

func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.IsEllipsis() {
		return []byte(`"..."`), nil
	}
	return []byte(strconv.Itoa(p.Number)), nil
}

func (p *PageItem) UnmarshalJSON(b []byte) error {
	if string(b) == `"..."` {
		*p = Ellipsis
		return nil
	}
	return json.Unmarshal(b, &p.Number)
}

// PageNumbers lists the page buttons to show. Up to seven pages are listed in full;
// beyond that the list collapses to 1 … c-1 c c+1 … last.
func PageNumbers(current, total int) []PageItem {
	if total < 1 {
		return []PageItem{}
	}
	if total <= 7 {
		out := make([]PageItem, 0, total)
		for i := 1; i <= total; i++ {
			out = append(out, PageItem{Number: i})
		}
		return out
	}

	out := []PageItem{{Number: 1}}
	if current > 4 {
		out = append(out, Ellipsis)
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		out = append(out, PageItem{Number: i})
	}
	if current < total-3 {
		out = append(out, Ellipsis)
	}
	return append(out, PageItem{Number: total})
}

// ParsePage reads ?page=, defaulting to 1. ok is false when the parameter is absent.
func ParsePage(r *http.Request) (page int, ok bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1, true
	}
	return n, true
}
