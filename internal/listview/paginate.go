package listview

const (
	DefaultPageSize   = 9
	DefaultMaxVisible = 5
)

// Page is one fixed-size slice of a filtered collection. An empty collection
// has zero pages and CurrentPage 1.
type Page[T any] struct {
	Items       []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	PageSize    int
	// StartIndex and EndIndex bound Items within the filtered collection,
	// end exclusive.
	StartIndex int
	EndIndex   int
}

// Paginate returns page currentPage of records, clamping currentPage into
// [1, TotalPages]. A non-positive pageSize means DefaultPageSize.
func Paginate[T any](records []T, pageSize, currentPage int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	if currentPage > totalPages {
		currentPage = totalPages
	}
	if currentPage < 1 {
		currentPage = 1
	}

	start := (currentPage - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       records[start:end],
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		StartIndex:  start,
		EndIndex:    end,
	}
}

func (p Page[T]) HasPrev() bool { return p.CurrentPage > 1 }

func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }

func (p Page[T]) PrevPage() int { return p.CurrentPage - 1 }

func (p Page[T]) NextPage() int { return p.CurrentPage + 1 }

// ShowingFrom is the 1-based position of the first item, or 0 when empty.
func (p Page[T]) ShowingFrom() int {
	if p.EndIndex == p.StartIndex {
		return 0
	}
	return p.StartIndex + 1
}

// RowNumber is the 1-based position of Items[i] within the filtered collection.
func (p Page[T]) RowNumber(i int) int {
	return p.StartIndex + i + 1
}
