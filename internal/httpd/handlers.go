package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tradebook/tradebook/tradebook"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch answers the search box. Structurally invalid queries are not
// HTTP errors: the verdict and messages travel in the body so the UI can
// render them inline.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	res, err := s.journal.Find(r.Context(), q)
	if err != nil {
		s.internalError(w, "search", err)
		return
	}
	observeSearch(res.Valid)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	out, err := s.journal.Suggest(r.Context(), q, limit)
	if err != nil {
		s.internalError(w, "suggest", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.journal.Tags(r.Context())
	if err != nil {
		s.internalError(w, "tags", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

type statsResponse struct {
	Valid  bool                  `json:"valid"`
	Errors []string              `json:"errors,omitempty"`
	Stats  *tradebook.TradeStats `json:"stats,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	stats, res, err := s.journal.Stats(r.Context(), q)
	if err != nil {
		s.internalError(w, "stats", err)
		return
	}
	if !res.Valid {
		writeJSON(w, http.StatusOK, statsResponse{Valid: false, Errors: res.Errors})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Valid: true, Stats: &stats})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.journal.List(r.Context())
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trades": trades})
}

func (s *Server) handlePutTrade(w http.ResponseWriter, r *http.Request) {
	var t tradebook.Trade
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.journal.Put(r.Context(), &t); err != nil {
		if tradebook.IsKind(err, tradebook.ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, "put", err)
		return
	}
	writeJSON(w, http.StatusOK, &t)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, err := s.journal.Get(r.Context(), id)
	if err != nil {
		if tradebook.IsKind(err, tradebook.ErrNotFound) {
			writeError(w, http.StatusNotFound, "trade not found")
			return
		}
		s.internalError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok, err := s.journal.Delete(r.Context(), id)
	if err != nil {
		s.internalError(w, "delete", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error("handler failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
