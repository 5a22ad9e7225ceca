package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/models"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Profile
	mux.HandleFunc("/api/profile", s.handleProfile)

	// Ledger
	mux.HandleFunc("/api/assets", s.handleAssets)
	mux.HandleFunc("/api/assets/", s.routeAssets)
	mux.HandleFunc("/api/overview", s.handleOverview)

	// History
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/snapshots", s.handleSnapshotCreate)

	// Planner
	mux.HandleFunc("/api/goals/evaluate", s.handleGoalEvaluate)
	mux.HandleFunc("/api/goals/analyze", s.handleGoalAnalyze)

	// Chat
	mux.HandleFunc("/api/chat", s.handleChat)
}

// routeAssets dispatches /api/assets/{category}/items[/{id}] to the
// appropriate item handler.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/assets/")
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] != "items" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	category := models.Category(parts[0])

	if len(parts) == 2 {
		s.handleItemAdd(w, r, category)
		return
	}

	itemID := parts[2]
	if itemID == "" || strings.Contains(itemID, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	s.handleItem(w, r, category, itemID)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
