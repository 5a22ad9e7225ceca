package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kay207/money-life/internal/app"
	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/models"
	"github.com/kay207/money-life/internal/services/chat"
	"github.com/kay207/money-life/internal/services/history"
	"github.com/kay207/money-life/internal/services/ledger"
	"github.com/kay207/money-life/internal/services/planner"
	"github.com/kay207/money-life/internal/storage"
)

// newTestServer creates a server over in-memory storage without an advisory
// client, so planner and chat handlers exercise the offline paths.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := common.NewSilentLogger()
	store := storage.NewMemoryStore()

	a := &app.App{
		Config:         common.NewDefaultConfig(),
		Logger:         logger,
		Store:          store,
		LedgerService:  ledger.NewService(store, logger),
		PlannerService: planner.NewService(nil, logger),
		ChatService:    chat.NewService(nil, logger),
		HistoryService: history.NewService(store, logger),
		StartupTime:    time.Now(),
	}

	srv := &Server{app: a, logger: logger}
	return srv
}

func (s *Server) testHandler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return applyMiddleware(mux, s.logger)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return bytes.NewBuffer(data)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
	if body["uptime"] == "" {
		t.Error("health response should report uptime")
	}
}

func TestHandleProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	// no profile yet
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before creation, got %d", rec.Code)
	}

	// create
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profile", jsonBody(t, map[string]string{"name": "小王"})))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeBody(t, rec, &profile)
	if profile.Name != "小王" {
		t.Errorf("name = %q, want 小王", profile.Name)
	}

	// fetch
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// reset
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profile", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after reset, got %d", rec.Code)
	}
}

func TestHandleProfileCreateRequiresName(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profile", jsonBody(t, map[string]string{})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAssetsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	// empty ledger comes back with all categories
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var assets models.UserAssets
	decodeBody(t, rec, &assets)
	if assets.Liquid == nil || assets.Liabilities == nil {
		t.Error("empty ledger categories should be present")
	}

	// replace wholesale
	assets.Liquid = []models.AssetItem{{ID: "l1", Name: "现金", Amount: 8000}}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/assets", jsonBody(t, &assets)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets", nil))
	var saved models.UserAssets
	decodeBody(t, rec, &saved)
	if len(saved.Liquid) != 1 || saved.Liquid[0].Amount != 8000 {
		t.Errorf("saved ledger = %+v", saved.Liquid)
	}
}

func TestHandleItemOperations(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	// add
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/assets/financial/items",
		jsonBody(t, models.AssetItem{ID: "f1", Name: "指数基金", Amount: 10000, InterestRate: 8})))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// patch
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/assets/financial/items/f1",
		jsonBody(t, map[string]any{"field": "amount", "value": 25000})))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var assets models.UserAssets
	decodeBody(t, rec, &assets)
	if assets.Financial[0].Amount != 25000 {
		t.Errorf("amount = %v, want 25000", assets.Financial[0].Amount)
	}

	// delete
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/assets/financial/items/f1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// delete again -> 404
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/assets/financial/items/f1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// unknown category -> 400
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/assets/crypto/items",
		jsonBody(t, models.AssetItem{Name: "btc"})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}
}

func TestHandleOverview(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/assets/liquid/items",
		jsonBody(t, models.AssetItem{ID: "l1", Name: "现金", Amount: 50000, InterestRate: 2})))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/overview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var overview models.NetWorthOverview
	decodeBody(t, rec, &overview)
	if overview.NetWorth != 50000 {
		t.Errorf("netWorth = %v, want 50000", overview.NetWorth)
	}
	if len(overview.Allocations) != 1 {
		t.Errorf("allocations = %d, want 1", len(overview.Allocations))
	}
}

func TestHandleHistoryAndSnapshots(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshots", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var snapshot models.AssetSnapshot
	decodeBody(t, rec, &snapshot)
	if snapshot.MonthKey == "" {
		t.Error("snapshot should carry a month key")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []models.AssetHistoryItem
	decodeBody(t, rec, &items)
	if len(items) != 7 {
		t.Errorf("history = %d points, want 7", len(items))
	}
}

func TestHandleGoalEvaluate(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/goals/evaluate", jsonBody(t, map[string]any{
		"type":                 "RETIREMENT",
		"currentPrincipal":     200000,
		"monthlySavings":       3000,
		"expectedReturnRate":   5,
		"targetMonthlyExpense": 5000,
	})))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var goal models.GoalContext
	decodeBody(t, rec, &goal)
	if goal.RequiredAmount != 1500000 {
		t.Errorf("requiredAmount = %v, want 1500000", goal.RequiredAmount)
	}
	if goal.ProjectedAmount <= 0 {
		t.Errorf("projectedAmount = %v, want positive", goal.ProjectedAmount)
	}
}

func TestHandleGoalEvaluateRejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/goals/evaluate",
		jsonBody(t, map[string]any{"type": "LOTTERY"})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleGoalAnalyzeOffline(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/goals/analyze", jsonBody(t, map[string]any{
		"type":               "PURCHASE",
		"currentPrincipal":   500000,
		"monthlySavings":     0,
		"expectedReturnRate": 0,
		"targetAmount":       100000,
		"yearsToGoal":        2,
	})))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Goal     models.GoalContext        `json:"goal"`
		Analysis models.GoalAnalysisResult `json:"analysis"`
	}
	decodeBody(t, rec, &body)
	if !body.Goal.IsAchievable {
		t.Error("goal should be achievable")
	}
	if body.Analysis.Evaluation != "方案可行" {
		t.Errorf("evaluation = %q, want 方案可行", body.Analysis.Evaluation)
	}
}

func TestHandleChatOffline(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		jsonBody(t, map[string]any{"message": "你好"})))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got == "" || !bytes.Contains([]byte(got), []byte("未配置 AI 服务密钥")) {
		t.Errorf("body = %q, want offline notice", got)
	}
}

func TestHandleChatRequiresMessage(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		jsonBody(t, map[string]any{"history": []models.ChatMessage{}})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/overview", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
