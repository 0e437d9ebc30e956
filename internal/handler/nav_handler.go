package handler

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/navigation"
	"simaset/internal/session"
)

type NavHandler struct {
	menu     *navigation.Menu
	sessions *session.Manager
}

func NewNavHandler(menu *navigation.Menu, sessions *session.Manager) *NavHandler {
	return &NavHandler{menu: menu, sessions: sessions}
}

// Toggle opens or closes a sidebar group and sends the user back to the page
// they were on.
func (h *NavHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Gagal memproses formulir", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")
	node, ok := h.menu.Find(id)
	if !ok || !node.IsGroup() {
		http.Error(w, "Menu tidak dikenal", http.StatusBadRequest)
		return
	}

	s := session.FromContext(r.Context())
	expanded := s.Expanded
	if expanded == nil {
		expanded = navigation.DefaultExpanded
	}
	next := *s
	next.Expanded = navigation.Toggle(expanded, id)
	if err := h.sessions.Save(w, r, &next); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save navigation state")
	}

	http.Redirect(w, r, localPath(r.FormValue("return"), "/dashboard"), http.StatusSeeOther)
}
