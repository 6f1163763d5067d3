package navserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	naverrors "github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/engine"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

type navigateRequest struct {
	URL                   string `json:"url"`
	Replace               bool   `json:"replace,omitempty"`
	FromHistory           bool   `json:"fromHistory,omitempty"`
	SkipQueryPreservation bool   `json:"skipQueryPreservation,omitempty"`
}

type navigateResponse struct {
	Success bool          `json:"success"`
	Handled bool          `json:"handled"`
	URL     string        `json:"url,omitempty"`
	Match   *matchPayload `json:"match,omitempty"`
	Error   *errorPayload `json:"error,omitempty"`
}

type matchPayload struct {
	RouteID           string            `json:"routeId"`
	Path              string            `json:"path"`
	EntityID          string            `json:"entityId,omitempty"`
	SecondaryEntityID string            `json:"secondaryEntityId,omitempty"`
	ModalID           string            `json:"modalId,omitempty"`
	Params            map[string]string `json:"params,omitempty"`
	QueryParams       map[string]string `json:"queryParams,omitempty"`
	MatchedSegments   int               `json:"matchedSegments"`
	TotalSegments     int               `json:"totalSegments"`
	Partial           bool              `json:"partial,omitempty"`
	IsDefault         bool              `json:"isDefault,omitempty"`
}

type errorPayload struct {
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func toMatchPayload(m *router.MatchResult) *matchPayload {
	if m == nil || !m.Success {
		return nil
	}
	return &matchPayload{
		RouteID:           m.Route.ID,
		Path:              m.Path(),
		EntityID:          m.EntityID,
		SecondaryEntityID: m.SecondaryEntityID,
		ModalID:           m.ModalID,
		Params:            m.Params,
		QueryParams:       m.QueryParams,
		MatchedSegments:   m.MatchedSegments,
		TotalSegments:     m.TotalSegments,
		Partial:           m.Partial,
		IsDefault:         m.IsDefault,
	}
}

func toErrorPayload(err error) *errorPayload {
	if err == nil {
		return nil
	}
	var ne *naverrors.NavError
	if errors.As(err, &ne) {
		return &errorPayload{
			Code:       ne.Code,
			Message:    ne.Message,
			Detail:     ne.Detail,
			Suggestion: ne.Suggestion,
		}
	}
	return &errorPayload{Message: err.Error()}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, navigateResponse{
			Error: &errorPayload{Message: "invalid request body"},
		})
		return
	}
	if req.URL == "" {
		s.writeJSON(w, http.StatusBadRequest, navigateResponse{
			Error: &errorPayload{Message: "url is required"},
		})
		return
	}

	res := s.engine.Navigate(r.Context(), req.URL, engine.NavigateOptions{
		Replace:               req.Replace,
		FromHistory:           req.FromHistory,
		SkipQueryPreservation: req.SkipQueryPreservation,
	})
	s.writeJSON(w, http.StatusOK, navigateResponse{
		Success: res.Success,
		Handled: res.Handled,
		URL:     res.URL,
		Match:   toMatchPayload(res.Match),
		Error:   toErrorPayload(res.Err),
	})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.engine.Back()
	s.writeJSON(w, http.StatusOK, navigateResponse{
		Success: true,
		Handled: true,
		Match:   toMatchPayload(s.engine.Current()),
	})
}

func (s *Server) handleCloseModal(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	res := s.engine.CloseModal(r.Context(), handle)
	s.writeJSON(w, http.StatusOK, navigateResponse{
		Success: res.Success,
		Handled: res.Handled,
		URL:     res.URL,
		Match:   toMatchPayload(res.Match),
		Error:   toErrorPayload(res.Err),
	})
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	trigger := chi.URLParam(r, "trigger")
	res := s.engine.Transition(r.Context(), trigger)
	status := http.StatusOK
	if res.Err != nil && !res.Handled {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, navigateResponse{
		Success: res.Success,
		Handled: res.Handled,
		URL:     res.URL,
		Match:   toMatchPayload(res.Match),
		Error:   toErrorPayload(res.Err),
	})
}

// handleResolve matches a path without executing a navigation.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeJSON(w, http.StatusBadRequest, navigateResponse{
			Error: &errorPayload{Message: "path is required"},
		})
		return
	}

	match := s.engine.Matcher().Match(path)
	if !match.Success {
		s.writeJSON(w, http.StatusNotFound, navigateResponse{
			Handled: true,
			Error:   toErrorPayload(match.Err),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, navigateResponse{
		Success: true,
		Handled: true,
		URL:     match.Path(),
		Match:   toMatchPayload(match),
	})
}

func (s *Server) handleBuildURL(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")
	q := r.URL.Query()

	opts := router.URLOptions{
		ModalID:           q.Get("modalId"),
		EntityID:          q.Get("entityId"),
		SecondaryEntityID: q.Get("secondaryEntityId"),
	}
	if extra := q.Get("query"); extra != "" {
		parsed, err := url.ParseQuery(extra)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, navigateResponse{
				Error: &errorPayload{Message: "invalid query parameter"},
			})
			return
		}
		opts.Query = parsed
	}

	built, err := s.engine.Matcher().BuildURL(routeID, opts)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, navigateResponse{
			Error: toErrorPayload(err),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": built})
}

type statePayload struct {
	Current     *matchPayload   `json:"current,omitempty"`
	Previous    *matchPayload   `json:"previous,omitempty"`
	History     []*matchPayload `json:"history"`
	OriginDepth int             `json:"originDepth"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.engine.State()
	payload := statePayload{
		Current:     toMatchPayload(st.Current),
		Previous:    toMatchPayload(st.Previous),
		History:     make([]*matchPayload, 0, len(st.History)),
		OriginDepth: st.OriginDepth,
	}
	for _, m := range st.History {
		payload.History = append(payload.History, toMatchPayload(m))
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Matcher().Index().NavigationEntries())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
