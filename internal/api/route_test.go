package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"waste_tracker/internal/domain"
	"waste_tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineA = `{"type":"LineString","coordinates":[[121.0941,14.6349],[121.1,14.64]]}`
const lineB = `{"type":"LineString","coordinates":[[121.2,14.7],[121.3,14.8]]}`

func TestGetRoutes_FeatureCollection(t *testing.T) {
	r, gdb := setupRouter(t, nil)
	routes := []domain.Route{
		{TruckNum: 1, StartMRF: "MRF North", DestPoint: "Payatas", Geom: lineA},
		{TruckNum: 1, StartMRF: "MRF North", DestPoint: "Barangay Hall", Geom: lineB},
		{TruckNum: 2, StartMRF: "MRF South", DestPoint: "Market", Geom: lineA},
	}
	require.NoError(t, gdb.Create(&routes).Error)

	w := doJSON(r, http.MethodGet, "/api/routes/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var fc domain.FeatureCollection
	decode(t, w, &fc)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Feature", fc.Features[0].Type)
	assert.JSONEq(t, lineA, string(fc.Features[0].Geometry))
	assert.JSONEq(t, lineB, string(fc.Features[1].Geometry))
	assert.Equal(t, domain.RouteProperties{ID: routes[0].ID, TruckNum: 1, StartMRF: "MRF North", DestPoint: "Payatas"}, fc.Features[0].Properties)
}

func TestGetRoutes_NoRowsIsNotFound(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/routes/42", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No routes found for this truck number."}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/routes/truck-one", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyRoutes(t *testing.T) {
	r, gdb := setupRouter(t, nil)
	require.NoError(t, gdb.Create(&domain.Route{TruckNum: 5, StartMRF: "MRF East", DestPoint: "Depot", Geom: lineA}).Error)

	w := doJSON(r, http.MethodGet, "/api/collector/routes", nil, testutil.TokenFor(t, domain.RoleCollector, testutil.IntPtr(5)))
	require.Equal(t, http.StatusOK, w.Code)
	var fc domain.FeatureCollection
	decode(t, w, &fc)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, 5, fc.Features[0].Properties.TruckNum)

	w = doJSON(r, http.MethodGet, "/api/collector/routes", nil, testutil.TokenFor(t, domain.RoleCollector, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/collector/routes", nil, testutil.TokenFor(t, domain.RoleCollector, testutil.IntPtr(6)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/collector/routes", nil, testutil.TokenFor(t, domain.RoleViewer, testutil.IntPtr(5)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateRoute(t *testing.T) {
	r, _ := setupRouter(t, nil)
	admin := testutil.TokenFor(t, domain.RoleAdmin, nil)
	body := map[string]any{
		"trucknum":   3,
		"start_mrf":  "MRF West",
		"dest_point": "Landfill",
		"geometry":   json.RawMessage(lineA),
	}

	w := doJSON(r, http.MethodPost, "/api/routes", body, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	var f domain.Feature
	decode(t, w, &f)
	assert.NotZero(t, f.Properties.ID)
	assert.JSONEq(t, lineA, string(f.Geometry))

	w = doJSON(r, http.MethodGet, "/api/routes/3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fc domain.FeatureCollection
	decode(t, w, &fc)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Landfill", fc.Features[0].Properties.DestPoint)
	assert.JSONEq(t, lineA, string(fc.Features[0].Geometry))
}

func TestCreateRoute_Validation(t *testing.T) {
	r, _ := setupRouter(t, nil)
	admin := testutil.TokenFor(t, domain.RoleAdmin, nil)

	point := map[string]any{"trucknum": 3, "geometry": json.RawMessage(`{"type":"Point","coordinates":[1,2]}`)}
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/api/routes", point, admin).Code)

	noCoords := map[string]any{"trucknum": 3, "geometry": json.RawMessage(`{"type":"LineString"}`)}
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/api/routes", noCoords, admin).Code)

	noTruck := map[string]any{"geometry": json.RawMessage(lineA)}
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/api/routes", noTruck, admin).Code)

	collector := testutil.TokenFor(t, domain.RoleCollector, testutil.IntPtr(3))
	ok := map[string]any{"trucknum": 3, "geometry": json.RawMessage(lineA)}
	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodPost, "/api/routes", ok, collector).Code)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
