package server

import (
	"net/http"
	"time"

	"github.com/kay207/money-life/internal/models"
)

// --- Profile handlers ---

// handleProfile handles GET/POST/DELETE /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.app.LedgerService.GetProfile(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if profile == nil {
			WriteError(w, http.StatusNotFound, "No profile found")
			return
		}
		WriteJSON(w, http.StatusOK, profile)

	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required")
			return
		}
		profile, err := s.app.LedgerService.CreateProfile(r.Context(), req.Name)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, profile)

	case http.MethodDelete:
		if err := s.app.LedgerService.Reset(r.Context()); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// --- Ledger handlers ---

// handleAssets handles GET/PUT /api/assets.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		assets, err := s.app.LedgerService.GetAssets(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, assets)

	case http.MethodPut:
		var assets models.UserAssets
		if !DecodeJSON(w, r, &assets) {
			return
		}
		if err := s.app.LedgerService.SaveAssets(r.Context(), &assets); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, &assets)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleItemAdd handles POST /api/assets/{category}/items.
func (s *Server) handleItemAdd(w http.ResponseWriter, r *http.Request, category models.Category) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !category.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown category: "+string(category))
		return
	}

	var item models.AssetItem
	if !DecodeJSON(w, r, &item) {
		return
	}
	if item.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	assets, err := s.app.LedgerService.AddItem(r.Context(), category, item)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, assets)
}

// handleItem handles PATCH/DELETE /api/assets/{category}/items/{id}.
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request, category models.Category, itemID string) {
	if !category.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown category: "+string(category))
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req struct {
			Field string `json:"field"`
			Value any    `json:"value"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Field == "" {
			WriteError(w, http.StatusBadRequest, "field is required")
			return
		}
		assets, err := s.app.LedgerService.UpdateItemField(r.Context(), category, itemID, req.Field, req.Value)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, assets)

	case http.MethodDelete:
		assets, err := s.app.LedgerService.DeleteItem(r.Context(), category, itemID)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, assets)

	default:
		RequireMethod(w, r, http.MethodPatch, http.MethodDelete)
	}
}

// handleOverview handles GET /api/overview.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	overview, err := s.app.LedgerService.Overview(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// --- History handlers ---

// handleHistory handles GET /api/history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	items, err := s.app.HistoryService.History(r.Context(), time.Now())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// handleSnapshotCreate handles POST /api/snapshots.
func (s *Server) handleSnapshotCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	snapshot, err := s.app.HistoryService.CreateSnapshot(r.Context(), time.Now())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, snapshot)
}

// --- Planner handlers ---

// handleGoalEvaluate handles POST /api/goals/evaluate.
func (s *Server) handleGoalEvaluate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var goal models.GoalContext
	if !DecodeJSON(w, r, &goal) {
		return
	}
	if err := s.app.PlannerService.Evaluate(&goal); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, &goal)
}

// handleGoalAnalyze handles POST /api/goals/analyze.
func (s *Server) handleGoalAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var goal models.GoalContext
	if !DecodeJSON(w, r, &goal) {
		return
	}
	result, err := s.app.PlannerService.Analyze(r.Context(), &goal)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"goal":     &goal,
		"analysis": result,
	})
}

// --- Chat handler ---

// handleChat handles POST /api/chat. The reply streams back as chunked
// plain text, flushed per fragment.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		History []models.ChatMessage `json:"history"`
		Message string               `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	chunks, err := s.app.ChatService.Stream(r.Context(), req.History, req.Message)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for chunk := range chunks {
		if _, err := w.Write([]byte(chunk)); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
