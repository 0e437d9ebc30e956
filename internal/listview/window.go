package listview

// Window is the run of page numbers shown in the pager, plus whether the
// first and last pages and the ellipses around the run are drawn.
type Window struct {
	Pages            []int
	Current          int
	Last             int
	ShowFirst        bool
	LeadingEllipsis  bool
	ShowLast         bool
	TrailingEllipsis bool
}

// VisiblePageWindow centres up to maxVisible page numbers on currentPage,
// shifting the run when it would cross 1 or totalPages.
func VisiblePageWindow(currentPage, totalPages, maxVisible int) Window {
	if totalPages <= 0 {
		return Window{Current: 1}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	startPage := max(1, currentPage-maxVisible/2)
	endPage := min(totalPages, startPage+maxVisible-1)
	if endPage-startPage+1 < maxVisible {
		startPage = max(1, endPage-maxVisible+1)
	}

	pages := make([]int, 0, endPage-startPage+1)
	for p := startPage; p <= endPage; p++ {
		pages = append(pages, p)
	}

	return Window{
		Pages:            pages,
		Current:          currentPage,
		Last:             totalPages,
		ShowFirst:        startPage > 1,
		LeadingEllipsis:  startPage > 2,
		ShowLast:         endPage < totalPages,
		TrailingEllipsis: endPage < totalPages-1,
	}
}
