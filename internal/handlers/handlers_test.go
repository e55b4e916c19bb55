package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/database"
	"github.com/lehmann314159/dreamcars/internal/metrics"
	"github.com/lehmann314159/dreamcars/internal/models"
	"github.com/lehmann314159/dreamcars/internal/repository"
	"github.com/lehmann314159/dreamcars/internal/view"
)

type testServer struct {
	cat     *catalog.Catalog
	handler http.Handler
}

func setupServer(t *testing.T, opts ...catalog.Option) *testServer {
	t.Helper()
	ctx := context.Background()
	repo := repository.New(database.NewMemoryStore(0), nil, nil)
	require.True(t, repo.SaveCollection(ctx, []models.Car{
		{ID: 1, Brand: "Porsche", Model: "911 Turbo S", Year: 2023, Price: 250000},
		{ID: 2, Brand: "Ferrari", Model: "488 Pista", Year: 2019, Price: 450000},
	}))

	v, err := view.New(nil)
	require.NoError(t, err)
	cat := catalog.New(repo, v, append([]catalog.Option{catalog.WithDeleteDelay(0)}, opts...)...)
	cat.Init(ctx)
	t.Cleanup(cat.Close)

	return &testServer{cat: cat, handler: NewRouter(cat, v, metrics.New(), zap.NewNop(), t.TempDir())}
}

func (s *testServer) do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestPage(t *testing.T) {
	s := setupServer(t)
	rec := s.do(http.MethodGet, "/", nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-theme="light"`)
	assert.Equal(t, 2, strings.Count(body, `class="car-card"`))
	assert.Contains(t, body, `<option value="Ferrari">`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := setupServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestFilters(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodPost, "/filters", url.Values{"q": {"pista"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-id="2"`)
	assert.NotContains(t, rec.Body.String(), `data-id="1"`)

	rec = s.do(http.MethodPost, "/filters", url.Values{"q": {""}, "sort": {"price-low"}}, true)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `data-id="1"`), strings.Index(body, `data-id="2"`))

	rec = s.do(http.MethodPost, "/filters", url.Values{"brand": {"Lada"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, s.do(http.MethodGet, "/cars", nil, true).Body.String(), "empty-state")

	st := s.cat.State()
	assert.Equal(t, "", st.SearchTerm)
	assert.Equal(t, "Lada", st.BrandFilter)
	assert.Equal(t, models.SortPriceLow, st.SortMode)
}

func TestCreateCar(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/cars/new", nil, true)
	assert.Contains(t, rec.Body.String(), "Ajouter une voiture")

	rec = s.do(http.MethodPost, "/cars", url.Values{
		"brand": {"Audi"}, "model": {"R8"}, "year": {"2020"}, "price": {"180000"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-swap-oob="true"`)
	assert.Contains(t, rec.Body.String(), "R8")

	cars := s.cat.Cars()
	require.Len(t, cars, 3)
	assert.Equal(t, "Audi", cars[2].Brand)
}

func TestCreateCarInvalid(t *testing.T) {
	s := setupServer(t)
	s.do(http.MethodGet, "/cars/new", nil, false)

	rec := s.do(http.MethodPost, "/cars", url.Values{"brand": {"Audi"}, "year": {"1800"}, "price": {"1"}}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="modelError" class="error-message show"`)
	assert.Contains(t, rec.Body.String(), `id="yearError" class="error-message show"`)
	assert.Len(t, s.cat.Cars(), 2)
}

func TestEditCar(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/cars/1/edit", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Modifier la voiture")
	assert.Contains(t, rec.Body.String(), `value="911 Turbo S"`)

	rec = s.do(http.MethodPost, "/cars", url.Values{
		"brand": {"Porsche"}, "model": {"911 GT3"}, "year": {"2023"}, "price": {"200000"},
	}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	cars := s.cat.Cars()
	require.Len(t, cars, 2)
	assert.Equal(t, "911 GT3", cars[0].Model)
	assert.Equal(t, 200000.0, cars[0].Price)
}

func TestEditUnknownOrInvalidID(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/cars/99/edit", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ajouter une voiture")

	rec = s.do(http.MethodGet, "/cars/abc/edit", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseForm(t *testing.T) {
	s := setupServer(t)
	s.do(http.MethodGet, "/cars/1/edit", nil, true)
	require.Equal(t, int64(1), s.cat.State().CurrentCarID)

	rec := s.do(http.MethodDelete, "/form", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, s.cat.State().CurrentCarID)
}

func TestToggleFavorite(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodPost, "/cars/2/favorite", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "❤️")
	assert.True(t, s.cat.Cars()[1].IsFavorite)
}

func TestDeleteFlow(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/cars/2/delete", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ferrari 488 Pista")

	rec = s.do(http.MethodPost, "/cars/2/delete", url.Values{"confirm": {"yes"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="cars-grid"`)
	assert.NotContains(t, rec.Body.String(), `data-id="2"`)

	cars := s.cat.Cars()
	require.Len(t, cars, 1)
	assert.Equal(t, int64(1), cars[0].ID)
}

func TestDelayedDeleteMarksCardRemoving(t *testing.T) {
	s := setupServer(t, catalog.WithDeleteDelay(50*time.Millisecond))

	s.do(http.MethodGet, "/cars/2/delete", nil, true)
	rec := s.do(http.MethodPost, "/cars/2/delete", url.Values{"confirm": {"yes"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="car-card removing" id="car-2"`)
	assert.Contains(t, body, `hx-swap-oob="true"`)
	assert.Contains(t, body, "delay:50ms")

	s.cat.Close()
	assert.Len(t, s.cat.Cars(), 1)

	rec = s.do(http.MethodGet, "/catalog", nil, true)
	assert.NotContains(t, rec.Body.String(), `id="car-2"`)
}

func TestDelayedDeleteOfHiddenCardRendersCatalog(t *testing.T) {
	s := setupServer(t, catalog.WithDeleteDelay(time.Hour))
	s.cat.SetBrandFilter("Porsche")

	s.do(http.MethodGet, "/cars/2/delete", nil, true)
	rec := s.do(http.MethodPost, "/cars/2/delete", url.Values{"confirm": {"yes"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="cars-grid"`)
	assert.NotContains(t, rec.Body.String(), "removing")
	assert.Len(t, s.cat.Cars(), 1)
}

func TestDeleteDeclinedOrUnknown(t *testing.T) {
	s := setupServer(t)

	s.do(http.MethodGet, "/cars/1/delete", nil, true)
	rec := s.do(http.MethodPost, "/cars/1/delete", url.Values{"confirm": {"no"}}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.do(http.MethodGet, "/cars/99/delete", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Len(t, s.cat.Cars(), 2)
}

func TestToggleTheme(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodPost, "/theme", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("HX-Refresh"))

	assert.Contains(t, s.do(http.MethodGet, "/", nil, false).Body.String(), `data-theme="dark"`)
}

func TestAPI(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/api/cars", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var cars []models.Car
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cars))
	require.Len(t, cars, 2)
	assert.Equal(t, int64(2), cars[0].ID)

	rec = s.do(http.MethodGet, "/api/stats", nil, false)
	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, models.Stats{Count: 2, TotalValue: 700000, AveragePrice: 350000}, stats)
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t)
	s.do(http.MethodGet, "/healthz", nil, false)

	rec := s.do(http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dreamcars_http_request_duration_seconds")
}
