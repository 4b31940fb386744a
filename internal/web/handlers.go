package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/leaderboard/internal/core"
	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
	"github.com/JonMunkholm/leaderboard/internal/logging"
	"github.com/JonMunkholm/leaderboard/internal/source"
	"github.com/JonMunkholm/leaderboard/internal/web/templates"
)

// handleLeaderboard renders the leaderboard page. Load failures are shown
// inside the table, so the page itself is always 200.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pr := s.service.Render(ctx, s.now())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(s.cfg.Leaderboard.Title, pr).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Warn("render page", "error", err)
	}
}

// leaderboardResponse is the JSON body of /api/leaderboard.
type leaderboardResponse struct {
	leaderboard.Projection
	Error *core.UserMessage `json:"error,omitempty"`
}

// handleLeaderboardJSON returns the projection as JSON. A failed load
// still returns the error projection, with a status describing the cause.
func (s *Server) handleLeaderboardJSON(w http.ResponseWriter, r *http.Request) {
	pr, err := s.service.RenderDetailed(r.Context(), s.now())

	resp := leaderboardResponse{Projection: pr}
	status := http.StatusOK
	if err != nil {
		msg := core.MapError(err)
		resp.Error = &msg
		status = loadStatus(err)
		logging.FromContext(r.Context()).Warn("leaderboard unavailable",
			"error", err,
			"code", msg.Code,
			"status", status,
		)
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSONStatus(w, status, resp)
}

// columnInfo describes one column of the current leaderboard.
type columnInfo struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"displayName"`
	Tags        []leaderboard.Tag `json:"tags,omitempty"`
	Formatter   string            `json:"formatter"`
}

// handleColumns lists the derived columns with their presentation.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	lb, err := s.service.Load(r.Context())
	if err != nil {
		s.respondError(w, r, err, loadStatus(err))
		return
	}

	p := s.service.Projector()
	cfg := p.Config()
	records := p.Sort(lb.Records, cfg.SortField)
	names := p.DeriveColumns(records)

	cols := make([]columnInfo, len(names))
	for i, name := range names {
		f, ok := cfg.Formatters[name]
		if !ok {
			f = leaderboard.Default()
		}
		cols[i] = columnInfo{
			Name:        name,
			DisplayName: p.DisplayName(name),
			Tags:        p.Classify(name, records),
			Formatter:   f.Kind().String(),
		}
	}
	writeJSON(w, cols)
}

// healthResponse is the body of /healthz.
type healthResponse struct {
	Status string                 `json:"status"`
	Source string                 `json:"source"`
	Loads  core.LoadLimiterStatus `json:"loads"`
}

// handleHealth reports liveness. It never touches the source.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status: "ok",
		Source: s.service.SourceName(),
		Loads:  s.service.Limiter().Status(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	msg := core.UserMessage{
		Message: "Page not found",
		Action:  "Return to the leaderboard",
		Code:    "HTTP404",
	}
	s.respondMessage(w, r, msg, http.StatusNotFound)
}

// loadStatus picks the HTTP status for a failed load.
func loadStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrTooManyLoads):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, source.ErrLoadFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
