package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/startpage/internal/links"
	"github.com/starford/startpage/internal/models"
)

func linkItem(i int, l models.QuickLink) LinkItem {
	return LinkItem{Index: i, Title: l.Title, URL: l.URL, Favicon: links.FaviconURL(l.URL)}
}

// ListLinks handles GET /api/links.
//
//	@Summary		List the quick-link shelf
//	@Tags			links
//	@Produce		json
//	@Success		200	{object}	LinkListResponse
//	@Security		BearerAuth
//	@Router			/links [get]
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	shelf := h.svc.ListLinks(r.Context())
	items := make([]LinkItem, len(shelf))
	for i, l := range shelf {
		items[i] = linkItem(i, l)
	}
	writeJSON(w, http.StatusOK, LinkListResponse{Links: items})
}

// CreateLink handles POST /api/links.
//
//	@Summary		Append a link; a missing scheme becomes https
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LinkRequest	true	"Link"
//	@Success		201		{object}	LinkItem
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/links [post]
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.svc.AddLink(r.Context(), req.Title, req.URL)
	if err != nil {
		writeError(w, "create link", err)
		return
	}
	writeJSON(w, http.StatusCreated, linkItem(len(h.svc.ListLinks(r.Context()))-1, l))
}

// DeleteLink handles DELETE /api/links/{index}. Out of range indexes succeed.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
		return
	}
	h.svc.RemoveLink(r.Context(), i)
	w.WriteHeader(http.StatusNoContent)
}
