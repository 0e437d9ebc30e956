package listview

// State is what the user controls on a list page.
type State struct {
	Query Query
	Page  int
}

// WithQuery replaces the query and goes back to the first page, so a new
// search never lands on a page past the end of the result.
func (s State) WithQuery(q Query) State {
	s.Query = q
	s.Page = 1
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// View is everything a list template needs.
type View[T any] struct {
	Page   Page[T]
	Window Window
	Total  int
	Query  Query
}

// Build filters records, paginates the result and computes the pager window.
func Build[T Record](records []T, s State, pageSize int) View[T] {
	filtered := Filter(records, s.Query)
	page := Paginate(filtered, pageSize, s.Page)
	return View[T]{
		Page:   page,
		Window: VisiblePageWindow(page.CurrentPage, page.TotalPages, DefaultMaxVisible),
		Total:  len(records),
		Query:  s.Query,
	}
}

// Filtered reports whether the query narrowed the collection.
func (v View[T]) Filtered() bool {
	return !v.Query.Empty()
}
