package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/listview"
	"simaset/internal/navigation"
	"simaset/internal/templates"
)

type Column struct {
	Header string
	Field  string
}

// FilterBox is a per-field search input. Every non-empty box must match.
type FilterBox struct {
	Field string
	Label string
	Value string
}

// ListPage describes one master-data table. Everything else about the page
// comes from the list-view engine.
type ListPage struct {
	Path              string
	Title             string
	Subtitle          string
	AddLabel          string
	SearchPlaceholder string
	// Noun is used in the fetch error, e.g. "Failed to fetch institutes".
	Noun         string
	SearchFields []string
	FilterBoxes  []FilterBox
	Columns      []Column
	Fetch        func(ctx context.Context) ([]listview.Record, error)
}

func records[T listview.Record](fetch func(context.Context) ([]T, error)) func(context.Context) ([]listview.Record, error) {
	return func(ctx context.Context) ([]listview.Record, error) {
		list, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]listview.Record, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, nil
	}
}

// MasterPages returns the four master-data list pages backed by api.
func MasterPages(api MasterAPI) []ListPage {
	return []ListPage{
		{
			Path:              "/institusi",
			Title:             "Data Institusi",
			Subtitle:          "Kelola data institusi yang terdaftar",
			AddLabel:          "Tambah Institusi",
			SearchPlaceholder: "Cari nama, PIC atau alamat...",
			Noun:              "institutes",
			SearchFields:      []string{"name", "pic", "address"},
			FilterBoxes: []FilterBox{
				{Field: "name", Label: "Nama"},
				{Field: "pic", Label: "PIC"},
				{Field: "address", Label: "Alamat"},
			},
			Columns: []Column{
				{"Nama Institusi", "name"},
				{"PIC", "pic"},
				{"Alamat", "address"},
			},
			Fetch: records(api.Institutes),
		},
		{
			Path:              "/unit",
			Title:             "Data Unit",
			Subtitle:          "Kelola data unit pada setiap institusi",
			AddLabel:          "Tambah Unit",
			SearchPlaceholder: "Cari nama atau PIC...",
			Noun:              "units",
			SearchFields:      []string{"name", "pic"},
			Columns: []Column{
				{"Nama Unit", "name"},
				{"PIC", "pic"},
				{"ID Institusi", "institute_id"},
			},
			Fetch: records(api.Units),
		},
		{
			Path:              "/sub-unit",
			Title:             "Data Sub Unit",
			Subtitle:          "Kelola data sub unit pada setiap unit",
			AddLabel:          "Tambah Sub Unit",
			SearchPlaceholder: "Cari nama atau PIC...",
			Noun:              "sub units",
			SearchFields:      []string{"name", "pic"},
			Columns: []Column{
				{"Nama Sub Unit", "name"},
				{"PIC", "pic"},
				{"ID Unit", "unit_id"},
			},
			Fetch: records(api.SubUnits),
		},
		{
			Path:              "/lokasi",
			Title:             "Data Lokasi",
			Subtitle:          "Kelola data lokasi penyimpanan aset",
			AddLabel:          "Tambah Lokasi",
			SearchPlaceholder: "Cari nama, PIC atau gedung...",
			Noun:              "locations",
			SearchFields:      []string{"name", "pic", "building"},
			Columns: []Column{
				{"Nama Lokasi", "name"},
				{"PIC", "pic"},
				{"Gedung", "building"},
			},
			Fetch: records(api.Locations),
		},
	}
}

type Row struct {
	No    int
	Cells []string
}

type listPageData struct {
	Title             string
	Subtitle          string
	AddLabel          string
	SearchPlaceholder string
	Path              string
	Shell             Shell
	Term              string
	Boxes             []FilterBox
	Columns           []Column
	Rows              []Row
	Filtered          bool
	Page              listview.Page[listview.Record]
	Window            listview.Window
}

// PageURL links to page p keeping the current search.
func (d listPageData) PageURL(p int) string {
	v := url.Values{}
	if d.Term != "" {
		v.Set("q", d.Term)
	}
	for _, b := range d.Boxes {
		if b.Value != "" {
			v.Set(b.Field, b.Value)
		}
	}
	v.Set("page", strconv.Itoa(p))
	return d.Path + "?" + v.Encode()
}

type errorPageData struct {
	Title   string
	Shell   Shell
	Message string
}

type ListHandler struct {
	page     ListPage
	pageSize int
	menu     *navigation.Menu
	tmpl     *templates.Renderer
}

func NewListHandler(page ListPage, pageSize int, menu *navigation.Menu, tmpl *templates.Renderer) *ListHandler {
	if pageSize <= 0 {
		pageSize = listview.DefaultPageSize
	}
	return &ListHandler{
		page:     page,
		pageSize: pageSize,
		menu:     menu,
		tmpl:     tmpl,
	}
}

// State reads the search term, field boxes and page number from the query
// string. A missing or malformed page is page 1.
func (h *ListHandler) State(r *http.Request) (listview.State, []FilterBox) {
	q := r.URL.Query()
	query := listview.Query{
		Term:  strings.TrimSpace(q.Get("q")),
		AnyOf: h.page.SearchFields,
	}

	boxes := make([]FilterBox, len(h.page.FilterBoxes))
	for i, b := range h.page.FilterBoxes {
		b.Value = strings.TrimSpace(q.Get(b.Field))
		boxes[i] = b
		if b.Value != "" {
			if query.Fields == nil {
				query.Fields = make(map[string]string)
			}
			query.Fields[b.Field] = b.Value
		}
	}

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	return listview.State{}.WithQuery(query).WithPage(page), boxes
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shell := newShell(h.menu, r)
	list, err := h.page.Fetch(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", h.page.Path).Msg("fetch list")
		data := errorPageData{
			Title:   h.page.Title,
			Shell:   shell,
			Message: "Failed to fetch " + h.page.Noun,
		}
		if err := h.tmpl.Render(w, http.StatusBadGateway, "error.html", data); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("render error page")
		}
		return
	}

	state, boxes := h.State(r)
	view := listview.Build(list, state, h.pageSize)

	rows := make([]Row, len(view.Page.Items))
	for i, rec := range view.Page.Items {
		cells := make([]string, len(h.page.Columns))
		for j, col := range h.page.Columns {
			cells[j], _ = rec.Field(col.Field)
		}
		rows[i] = Row{No: view.Page.RowNumber(i), Cells: cells}
	}

	data := listPageData{
		Title:             h.page.Title,
		Subtitle:          h.page.Subtitle,
		AddLabel:          h.page.AddLabel,
		SearchPlaceholder: h.page.SearchPlaceholder,
		Path:              h.page.Path,
		Shell:             shell,
		Term:              state.Query.Term,
		Boxes:             boxes,
		Columns:           h.page.Columns,
		Rows:              rows,
		Filtered:          view.Filtered(),
		Page:              view.Page,
		Window:            view.Window,
	}
	if err := h.tmpl.Render(w, http.StatusOK, "list.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render list")
	}
}
