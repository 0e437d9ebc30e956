package handler

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/session"
	"simaset/internal/templates"
)

type IndexHandler struct {
	tmpl *templates.Renderer
}

func NewIndexHandler(tmpl *templates.Renderer) *IndexHandler {
	return &IndexHandler{tmpl: tmpl}
}

// Index is the public landing page. Signed-in users go straight to the dashboard.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if session.FromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := h.tmpl.Render(w, http.StatusOK, "index.html", map[string]any{"Title": "Beranda"}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render index")
	}
}
