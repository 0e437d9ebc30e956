package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"simaset/internal/entity"
	"simaset/internal/navigation"
	"simaset/internal/repository"
	"simaset/internal/templates"
)

type Stat struct {
	Title  string
	Path   string
	Color  string
	Value  int
	Failed bool
}

type dashboardSource struct {
	title string
	path  string
	color string
	count func(ctx context.Context) (int, error)
}

type DashboardHandler struct {
	sources       []dashboardSource
	activity      repository.ActivityRepository
	activityLimit int
	menu          *navigation.Menu
	tmpl          *templates.Renderer
}

func NewDashboardHandler(api MasterAPI, activity repository.ActivityRepository, activityLimit int, menu *navigation.Menu, tmpl *templates.Renderer) *DashboardHandler {
	return &DashboardHandler{
		sources: []dashboardSource{
			{"Total Institusi", "/institusi", "navy", countOf(api.Institutes)},
			{"Total Unit", "/unit", "green", countOf(api.Units)},
			{"Total Sub Unit", "/sub-unit", "purple", countOf(api.SubUnits)},
			{"Total Lokasi", "/lokasi", "orange", countOf(api.Locations)},
		},
		activity:      activity,
		activityLimit: activityLimit,
		menu:          menu,
		tmpl:          tmpl,
	}
}

func countOf[T any](fetch func(context.Context) ([]T, error)) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		list, err := fetch(ctx)
		return len(list), err
	}
}

// Stats fetches every count concurrently. A failing source reports zero and
// does not affect the others.
func (h *DashboardHandler) Stats(r *http.Request) []Stat {
	stats := make([]Stat, len(h.sources))
	g, ctx := errgroup.WithContext(r.Context())
	for i, src := range h.sources {
		stats[i] = Stat{Title: src.title, Path: src.path, Color: src.color}
		g.Go(func() error {
			n, err := src.count(ctx)
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Str("source", src.path).Msg("dashboard count failed")
				stats[i].Failed = true
				return nil
			}
			stats[i].Value = n
			return nil
		})
	}
	_ = g.Wait()
	return stats
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := h.Stats(r)
	total := 0
	for _, s := range stats {
		total += s.Value
	}

	var activities []entity.Activity
	if h.activity != nil && h.activityLimit > 0 {
		var err error
		activities, err = h.activity.Recent(r.Context(), h.activityLimit)
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("load recent activity")
		}
	}

	data := map[string]any{
		"Title":      "Dashboard",
		"Shell":      newShell(h.menu, r),
		"Stats":      stats,
		"Total":      total,
		"Activities": activities,
		"Now":        time.Now(),
	}
	if err := h.tmpl.Render(w, http.StatusOK, "dashboard.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render dashboard")
	}
}
