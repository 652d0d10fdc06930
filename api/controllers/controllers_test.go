package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/dashboard"
	"github.com/medrelive/medfinder-backend/internal/inventory"
	"github.com/medrelive/medfinder-backend/internal/search"
	"github.com/medrelive/medfinder-backend/internal/stores"
	"github.com/medrelive/medfinder-backend/pkg/config"
)

type fixture struct {
	catalog   *catalog.Catalog
	index     *inventory.Index
	search    search.Service
	stores    stores.Service
	dashboard dashboard.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c := catalog.Default()
	idx := inventory.New(c)

	searchSvc, err := search.NewService(search.ServiceParams{Catalog: c, Inventory: idx})
	if err != nil {
		t.Fatalf("search service: %v", err)
	}
	storeSvc, err := stores.NewService(c, idx)
	if err != nil {
		t.Fatalf("store service: %v", err)
	}
	dashSvc, err := dashboard.NewService(dashboard.ServiceParams{
		StoreID:   "s1",
		Catalog:   c,
		Inventory: idx,
		Wait:      func(context.Context, time.Duration) error { return nil },
	})
	if err != nil {
		t.Fatalf("dashboard service: %v", err)
	}
	return fixture{catalog: c, index: idx, search: searchSvc, stores: storeSvc, dashboard: dashSvc}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: dest}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error.Code
}

type stubTipper struct {
	tip   string
	delay time.Duration
}

func (s stubTipper) HealthTip(ctx context.Context, query string) string {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.tip
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":"disabled"`) {
		t.Fatalf("expected redis disabled, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, failingPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestMedicineListAndQuickTags(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	MedicineList(f.catalog, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/medicines", nil))
	var meds []search.MedicineDTO
	decodeData(t, rec, &meds)
	if len(meds) != 6 || meds[0].Name != "Paracetamol 500mg" {
		t.Fatalf("unexpected medicines %+v", meds)
	}

	rec = httptest.NewRecorder()
	MedicineQuickTags().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/medicines/quick-tags", nil))
	var tags []string
	decodeData(t, rec, &tags)
	if strings.Join(tags, ",") != "Insulin,Asthalin,Pan-D,Telma-H" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestSearchReturnsStoresInCatalogOrder(t *testing.T) {
	f := newFixture(t)
	handler := Search(f.search, stubTipper{tip: "Stay hydrated."}, time.Second, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=paracetamol", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var out search.ResultDTO
	decodeData(t, rec, &out)
	if out.Medicine == nil || out.Medicine.ID != "1" {
		t.Fatalf("expected medicine 1, got %+v", out.Medicine)
	}
	var ids []string
	for _, e := range out.Results {
		ids = append(ids, e.Store.ID)
	}
	if strings.Join(ids, ",") != "s1,s2,s3" {
		t.Fatalf("unexpected store order %v", ids)
	}
	if out.Results[1].MatchedRecord.StatusLabel != "Out of Stock" {
		t.Fatalf("expected s2 out of stock, got %+v", out.Results[1].MatchedRecord)
	}
	if out.Results[2].DetailPath != "/stores/s3?highlight=1" {
		t.Fatalf("unexpected detail path %q", out.Results[2].DetailPath)
	}
	if out.HealthTip == nil || *out.HealthTip != "Stay hydrated." {
		t.Fatalf("expected tip, got %v", out.HealthTip)
	}
}

func TestSearchNoMatchIsNotAnError(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	Search(f.search, nil, 0, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=xyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var out search.ResultDTO
	decodeData(t, rec, &out)
	if out.Medicine != nil || !out.NoResults || len(out.Results) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
	if out.HealthTip != nil {
		t.Fatalf("expected no tip without an enricher")
	}
}

func TestSearchBlankQueryRejected(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	Search(f.search, nil, 0, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=%20%20", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestSearchOmitsSlowTip(t *testing.T) {
	f := newFixture(t)
	handler := Search(f.search, stubTipper{tip: "late", delay: 200 * time.Millisecond}, 10*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=cetirizine", nil))

	var out search.ResultDTO
	decodeData(t, rec, &out)
	if out.HealthTip != nil {
		t.Fatalf("expected tip to be omitted, got %q", *out.HealthTip)
	}
	if len(out.Results) != 1 || out.Results[0].Store.ID != "s3" {
		t.Fatalf("unexpected results %+v", out.Results)
	}
}

func TestSearchSuggestions(t *testing.T) {
	f := newFixture(t)
	handler := SearchSuggestions(f.search, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search/suggestions?input=mg", nil))
	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeData(t, rec, &out)
	if len(out.Suggestions) != 5 {
		t.Fatalf("expected suggestions capped at 5, got %v", out.Suggestions)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search/suggestions?input=a", nil))
	out.Suggestions = nil
	decodeData(t, rec, &out)
	if out.Suggestions == nil || len(out.Suggestions) != 0 {
		t.Fatalf("expected empty list below threshold, got %v", out.Suggestions)
	}
}

func TestStoreDetailHighlightsRow(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/s3?highlight=6", nil)
	req = withURLParam(req, "storeId", "s3")
	rec := httptest.NewRecorder()

	StoreDetail(f.stores, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var detail stores.StoreDetailDTO
	decodeData(t, rec, &detail)
	var highlighted []string
	for _, row := range detail.Inventory {
		if row.Highlighted {
			highlighted = append(highlighted, row.MedicineID)
		}
	}
	if strings.Join(highlighted, ",") != "6" {
		t.Fatalf("expected only medicine 6 highlighted, got %v", highlighted)
	}
}

func TestStoreDetailUnknownStore(t *testing.T) {
	f := newFixture(t)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/stores/s9", nil), "storeId", "s9")
	rec := httptest.NewRecorder()

	StoreDetail(f.stores, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "NOT_FOUND" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestStoreList(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	StoreList(f.stores, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

	var list []stores.StoreSummaryDTO
	decodeData(t, rec, &list)
	if len(list) != 3 || list[0].ID != "s1" {
		t.Fatalf("unexpected stores %+v", list)
	}
}

func TestDashboardLogin(t *testing.T) {
	f := newFixture(t)
	handler := DashboardLogin(f.dashboard, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/login", strings.NewReader(`{"email":"owner@citycentral.test","password":"secret"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var session dashboard.SessionDTO
	decodeData(t, rec, &session)
	if session.SessionID == "" || session.StoreID != "s1" {
		t.Fatalf("unexpected session %+v", session)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/login", strings.NewReader(`{"email":"","password":""}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestDashboardUpdateStatusAcceptsLabel(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/dashboard/inventory/2", strings.NewReader(`{"status":"Out of Stock"}`))
	req = withURLParam(req, "medicineId", "2")
	rec := httptest.NewRecorder()

	DashboardUpdateStatus(f.dashboard, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var row stores.InventoryRowDTO
	decodeData(t, rec, &row)
	if row.Status != "out_of_stock" || row.LastUpdated != dashboard.JustNow {
		t.Fatalf("unexpected row %+v", row)
	}

	record, ok := f.index.Record("s1", "2")
	if !ok || record.Status != "out_of_stock" {
		t.Fatalf("expected live index to be updated, got %+v", record)
	}
}

func TestDashboardUpdateStatusErrors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name       string
		medicineID string
		body       string
		status     int
	}{
		{name: "unknown status", medicineID: "1", body: `{"status":"backordered"}`, status: http.StatusBadRequest},
		{name: "missing status", medicineID: "1", body: `{}`, status: http.StatusBadRequest},
		{name: "not stocked", medicineID: "6", body: `{"status":"in_stock"}`, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/dashboard/inventory/"+tt.medicineID, strings.NewReader(tt.body))
			req = withURLParam(req, "medicineId", tt.medicineID)
			rec := httptest.NewRecorder()

			DashboardUpdateStatus(f.dashboard, nil).ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("expected %d got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDashboardInventoryFilterAndStats(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	DashboardInventory(f.dashboard, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/inventory?filter=AMOX", nil))
	var rows []stores.InventoryRowDTO
	decodeData(t, rec, &rows)
	if len(rows) != 1 || rows[0].MedicineID != "2" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	rec = httptest.NewRecorder()
	DashboardStats(f.dashboard, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))
	var stats dashboard.StatsDTO
	decodeData(t, rec, &stats)
	if stats.Total != 3 || stats.InStock != 2 || stats.LowStock != 1 || stats.OutOfStock != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rec = httptest.NewRecorder()
	DashboardSync(f.dashboard, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/sync", nil))
	var sync dashboard.SyncDTO
	decodeData(t, rec, &sync)
	if sync.Message != dashboard.SyncMessage {
		t.Fatalf("unexpected sync message %q", sync.Message)
	}
}

type stubEnricher struct{}

func (stubEnricher) HealthTip(ctx context.Context, query string) string {
	return "tip for " + query
}

func (stubEnricher) Alternatives(ctx context.Context, name string) []string {
	return []string{}
}

func TestEnrichmentEndpointsAlwaysOK(t *testing.T) {
	rec := httptest.NewRecorder()
	EnrichmentHealthTip(stubEnricher{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/enrichment/health-tip?q=insulin", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"tip":"tip for insulin"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	EnrichmentAlternatives(stubEnricher{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/enrichment/alternatives?name=", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"alternatives":[]`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
