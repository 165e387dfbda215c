package handlers_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/csvstore"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/server/handlers"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/server/router"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/decision"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/forecasting"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/maintenance"
)

// newTestEngine wires the full HTTP surface against a generated demo
// dataset, the way main does, with quiet logging and a pinned noise seed.
func newTestEngine(t *testing.T) (*gin.Engine, *csvstore.Store) {
	t.Helper()

	store := csvstore.New(t.TempDir(), 42, false, zap.NewNop())
	store.LoadOrGenerate()

	noise := jitter.New(1)
	h := handlers.New(
		store,
		maintenance.NewService(noise),
		forecasting.NewService(noise),
		decision.NewService(noise),
		analytics.NewService(noise),
		decision.NewSessionManager(),
		forecasting.DefaultHorizonDays,
		zap.NewNop(),
	)
	return router.New(h, zap.NewNop()), store
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, sessionID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(router.SessionHeader, sessionID)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	return payload
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON(t, rec)["status"])
}

func TestSessionHeaderMintedAndEchoed(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("minted when absent", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/healthz", "", "")
		assert.NotEmpty(t, rec.Header().Get(router.SessionHeader))
	})

	t.Run("echoed when present", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/healthz", "session-42", "")
		assert.Equal(t, "session-42", rec.Header().Get(router.SessionHeader))
	})
}

func TestOverview(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/overview", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	kpis, ok := payload["kpis"].(map[string]any)
	require.True(t, ok)

	risk := kpis["factory_risk_pct"].(float64)
	assert.GreaterOrEqual(t, risk, 0.0)
	assert.LessOrEqual(t, risk, 100.0)
	assert.Equal(t, "476564", kpis["annual_savings_jod"])

	assert.Contains(t, []any{"EXCELLENT", "GOOD", "ATTENTION"}, payload["health_badge"])
	assert.Contains(t, []any{"STABLE", "MEDIUM", "CRITICAL"}, payload["risk_status"])
	assert.InDelta(t, 100-risk, payload["health_score"].(float64), 1e-9)

	dist := payload["risk_distribution"].(map[string]any)
	total := dist["critical"].(float64) + dist["warning"].(float64) + dist["stable"].(float64)
	assert.Equal(t, 8.0, total)

	require.Contains(t, payload, "insights")
}

func TestInventoryPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/inventory", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	items := payload["items"].([]any)
	assert.Len(t, items, 20)

	first := items[0].(map[string]any)
	assert.Contains(t, first, "stock_value_jod")
	assert.Contains(t, first, "status")

	heatmap := payload["heatmap"].([]any)
	assert.Len(t, heatmap, 15)

	health := payload["health_score"].(float64)
	assert.GreaterOrEqual(t, health, 0.0)
	assert.LessOrEqual(t, health, 100.0)

	summary := payload["summary"].(map[string]any)
	assert.NotEmpty(t, summary["total_stock_value_jod"])

	costs := payload["costs"].(map[string]any)
	for _, key := range []string{"holding_cost_jod", "safety_stock_cost_jod", "ordering_cost_jod", "stockout_risk_jod", "total_cost_jod"} {
		assert.NotEmpty(t, costs[key], key)
	}
}

func TestReorder(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("advice for a known product", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/inventory/1/reorder", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeJSON(t, rec)
		assert.Equal(t, 1.0, payload["product_id"])
		assert.Greater(t, payload["economic_order_qty"].(float64), 0.0)
		assert.GreaterOrEqual(t, payload["reorder_quantity"].(float64), payload["economic_order_qty"].(float64))
		assert.Greater(t, payload["optimized_safety_stock"].(float64), 0.0)
	})

	t.Run("volatility tunes the safety stock", func(t *testing.T) {
		low := decodeJSON(t, doRequest(t, engine, http.MethodGet, "/api/v1/inventory/1/reorder?volatility=low", "", ""))
		high := decodeJSON(t, doRequest(t, engine, http.MethodGet, "/api/v1/inventory/1/reorder?volatility=high", "", ""))

		assert.Less(t, low["optimized_safety_stock"].(float64), high["optimized_safety_stock"].(float64))
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/inventory/flour/reorder", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/inventory/999/reorder", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMachinesPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/machines", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	machines := payload["machines"].([]any)
	assert.Len(t, machines, 8)

	first := machines[0].(map[string]any)
	health := first["health_pct"].(float64)
	assert.GreaterOrEqual(t, health, 0.0)
	assert.LessOrEqual(t, health, 100.0)

	assert.InDelta(t, 83.79, payload["oee_pct"].(float64), 1e-9)
	assert.Contains(t, payload, "fleet_health")
}

func TestMachinePrediction(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("full prediction view", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/machines/1/prediction", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeJSON(t, rec)
		failure := payload["failure"].(map[string]any)
		p := failure["failure_probability"].(float64)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		assert.Contains(t, []any{"Low", "Medium", "High"}, failure["risk_level"])

		rul := payload["rul"].(map[string]any)
		assert.GreaterOrEqual(t, rul["rul_hours"].(float64), 24.0)

		history := payload["sensor_history"].([]any)
		assert.Len(t, history, 24)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/machines/oven/prediction", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown machine", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/machines/999/prediction", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRobotsPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/robots", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	robots := payload["robots"].([]any)
	// The demo fleet always carries the two robotic arms.
	assert.Len(t, robots, 2)
	assert.Equal(t, 2.0, payload["total_robots"])

	for _, entry := range robots {
		robot := entry.(map[string]any)
		assert.Contains(t, robot["machine_name"], "Robot")
		assert.Contains(t, robot, "rul")
		assert.Contains(t, robot, "anomaly")
	}
}

func TestOperationsPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/operations", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	areas := payload["areas"].([]any)
	assert.Len(t, areas, 8)

	first := areas[0].(map[string]any)
	assert.Contains(t, []any{"critical", "warning", "normal"}, first["status"])
	assert.Contains(t, first, "downtime_cost_jod")

	trend := payload["output_trend"].([]any)
	assert.Len(t, trend, 24)

	summary := payload["summary"].(map[string]any)
	assert.Greater(t, summary["total_throughput"].(float64), 0.0)
	assert.NotEmpty(t, payload["downtime_cost_per_unit_jod"])
}

func TestForecast(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("default horizon", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/forecast/1", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeJSON(t, rec)
		assert.Equal(t, 1.0, payload["product_id"])
		assert.Len(t, payload["forecast"].([]any), forecasting.DefaultHorizonDays)
		assert.Len(t, payload["history"].([]any), 180)

		for _, entry := range payload["forecast"].([]any) {
			point := entry.(map[string]any)
			assert.GreaterOrEqual(t, point["demand"].(float64), 0.0)
			assert.GreaterOrEqual(t, point["lower_bound"].(float64), 0.0)
			assert.GreaterOrEqual(t, point["upper_bound"].(float64), point["demand"].(float64))
		}

		assert.Contains(t, payload, "reorder_advice")
		assert.Contains(t, payload, "rolling_weekly")
	})

	t.Run("custom horizon", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/forecast/1?days=7", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeJSON(t, rec)["forecast"].([]any), 7)
	})

	t.Run("horizon out of range", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, doRequest(t, engine, http.MethodGet, "/api/v1/forecast/1?days=0", "", "").Code)
		assert.Equal(t, http.StatusBadRequest, doRequest(t, engine, http.MethodGet, "/api/v1/forecast/1?days=999", "", "").Code)
		assert.Equal(t, http.StatusBadRequest, doRequest(t, engine, http.MethodGet, "/api/v1/forecast/1?days=soon", "", "").Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, doRequest(t, engine, http.MethodGet, "/api/v1/forecast/999", "", "").Code)
	})
}

func TestDecisionSummary(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/decisions/summary", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	risk := payload["risk_score"].(float64)
	assert.GreaterOrEqual(t, risk, 0.0)
	assert.LessOrEqual(t, risk, 100.0)
	assert.Contains(t, []any{"STABLE", "MEDIUM", "CRITICAL"}, payload["risk_status"])
	assert.Contains(t, payload, "critical_machines")
	assert.Contains(t, payload, "bottlenecks")
}

func TestDecisionFlow(t *testing.T) {
	engine, store := newTestEngine(t)

	t.Run("nothing cached yet", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/decisions", "alice", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, engine, http.MethodGet, "/api/v1/decisions/export", "alice", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/decisions/generate", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON(t, rec)
	recommendations := payload["recommendations"].([]any)
	total := int(payload["total"].(float64))
	assert.Len(t, recommendations, total)
	assert.Equal(t, 5.0, payload["models_executed"])
	assert.NotEmpty(t, payload["monthly_savings"])

	// The rule groups fire purely on dataset contents, so the count is
	// reproducible from the snapshot.
	assert.Equal(t, expectedRecommendationCount(t, store), total)

	assessments := payload["assessments"].([]any)
	require.Len(t, assessments, total)
	for _, entry := range assessments {
		a := entry.(map[string]any)
		assert.Contains(t, []any{"Easy", "Moderate", "Difficult"}, a["difficulty"])
		roi := a["roi"].(map[string]any)
		assert.NotEmpty(t, roi["implementation_cost"])
	}

	t.Run("cached result is served back", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/decisions", "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, payload["generated_at"], decodeJSON(t, rec)["generated_at"])
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/decisions", "bob", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/decisions/export", "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)

		disposition := rec.Header().Get("Content-Disposition")
		assert.Contains(t, disposition, "attachment")
		assert.Contains(t, disposition, "cookiesjo_recommendations_")

		rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, []string{"priority", "category", "action", "reason", "impact", "timeline", "ai_methods"}, rows[0])
		assert.Len(t, rows, total+1)
	})
}

// expectedRecommendationCount replays the rule-group triggers over the
// store's snapshot: every critical machine, capped low-stock, medium-temp,
// bottleneck and overstock groups.
func expectedRecommendationCount(t *testing.T, store *csvstore.Store) int {
	t.Helper()
	ds := store.Dataset()
	require.NotNil(t, ds)

	var critical, medium, lowStock, bottlenecks, overstock int
	for _, m := range ds.Machines {
		switch {
		case m.Temperature > 85:
			critical++
		case m.Temperature > 80:
			medium++
		}
	}
	for _, item := range ds.Inventory {
		if item.IsBelowSafety() {
			lowStock++
		}
		if float64(item.CurrentStock) > float64(item.SafetyStock)*2.5 {
			overstock++
		}
	}
	for _, area := range ds.Operations {
		if area.Utilization > 85 {
			bottlenecks++
		}
	}

	capAt := func(n, cap int) int {
		if n > cap {
			return cap
		}
		return n
	}
	return critical + capAt(lowStock, 3) + capAt(medium, 2) + capAt(bottlenecks, 2) + capAt(overstock, 2)
}

func TestThemeFlow(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("defaults to light", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/session/theme", "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "light", decodeJSON(t, rec)["theme"])
	})

	t.Run("switch to dark", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPut, "/api/v1/session/theme", "alice", `{"theme":"dark"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, engine, http.MethodGet, "/api/v1/session/theme", "alice", "")
		assert.Equal(t, "dark", decodeJSON(t, rec)["theme"])

		// Another session keeps its own default.
		rec = doRequest(t, engine, http.MethodGet, "/api/v1/session/theme", "bob", "")
		assert.Equal(t, "light", decodeJSON(t, rec)["theme"])
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPut, "/api/v1/session/theme", "alice", `{"theme":"sepia"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing body", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPut, "/api/v1/session/theme", "alice", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRefreshDataset(t *testing.T) {
	engine, store := newTestEngine(t)
	before := store.Dataset()

	t.Run("regenerates with a new seed", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/datasets/refresh", "", `{"seed":7}`)
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeJSON(t, rec)
		assert.Equal(t, 7.0, payload["seed"])

		counts := payload["counts"].(map[string]any)
		assert.Equal(t, 20.0, counts["inventory"])
		assert.Equal(t, 8.0, counts["machines"])
		assert.Equal(t, 8.0, counts["operations"])
		assert.Equal(t, 20.0*180, counts["demand"])

		assert.NotSame(t, before, store.Dataset())
	})

	t.Run("empty body regenerates with the configured seed", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/datasets/refresh", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42.0, decodeJSON(t, rec)["seed"])
	})

	t.Run("reload from files falls back to generation", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/datasets/refresh", "", `{"source":"files"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/datasets/refresh", "", `{"source":"postgres"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/datasets/refresh", "", `{"seed":"many"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
