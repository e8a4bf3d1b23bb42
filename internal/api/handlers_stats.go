package api

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":      s.stats.Snapshot(),
		"queue_depth":   s.orchestrator.QueueDepth(),
		"open_sessions": s.sessions.Len(),
	})
}
