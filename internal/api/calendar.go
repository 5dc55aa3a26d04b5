package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starford/startpage/internal/calendar"
)

// Calendar handles GET /api/calendar. Without year and month it returns the
// displayed month.
//
//	@Summary		Month grid, Saturday first
//	@Tags			calendar
//	@Produce		json
//	@Param			year	query		int	false	"Year"
//	@Param			month	query		int	false	"Month 1-12"
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("year") == "" && q.Get("month") == "" {
		writeJSON(w, http.StatusOK, h.svc.Month(r.Context()))
		return
	}
	year, errY := strconv.Atoi(q.Get("year"))
	month, errM := strconv.Atoi(q.Get("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 || year < 1 || year > 9999 {
		writeJSON(w, http.StatusBadRequest, errorBody("year and month must be a valid year and 1-12"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Grid(r.Context(), calendar.View{Year: year, Month: time.Month(month)}))
}

// PrevMonth handles POST /api/calendar/prev.
func (h *Handler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.PrevMonth(r.Context()))
}

// NextMonth handles POST /api/calendar/next.
func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.NextMonth(r.Context()))
}

// ThisMonth handles POST /api/calendar/today.
func (h *Handler) ThisMonth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ThisMonth(r.Context()))
}

// Search handles GET /api/search by redirecting to the search engine.
//
//	@Summary		Web search
//	@Tags			search
//	@Param			q	query	string	true	"Search query"
//	@Success		302
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	http.Redirect(w, r, h.searchURL+url.QueryEscape(q), http.StatusFound)
}
