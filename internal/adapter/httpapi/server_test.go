package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
	"github.com/cairnhealth/altitude-risk-service/internal/service"
)

type stubResolver struct {
	result domain.PlaceElevation
	err    error
}

func (s *stubResolver) ResolvePlace(_ context.Context, _ string) (domain.PlaceElevation, error) {
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(resolver domain.ElevationResolver) *Server {
	metrics := observability.NewMetricsForTesting()
	assessor := service.New(domain.DefaultGuideline(), resolver, nil, nil, metrics, discardLogger())
	return NewServer(":0", assessor, metrics, discardLogger())
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssess_WithElevation(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/assessments",
		`{"elevation_meters":4200,"profile":{"rapid_ascent":true},"symptoms":{"headache":true}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.AssessResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Very High Altitude", result.Assessment.Category.Name)
	assert.Equal(t, domain.RiskHigh, result.Assessment.Risk.Level)
	assert.Equal(t, 1, result.Assessment.Severity.LakeLouiseScore)
	assert.NotEmpty(t, result.Assessment.ID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAssess_WithPlace(t *testing.T) {
	resolver := &stubResolver{
		result: domain.PlaceElevation{PlaceName: "Cusco", ElevationMeters: 3392},
	}
	rec := doRequest(t, testServer(resolver), http.MethodPost, "/api/v1/assessments",
		`{"place":"Cusco"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.AssessResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Place)
	assert.Equal(t, "Cusco", result.Place.PlaceName)
	assert.Equal(t, 3392.0, result.Assessment.ElevationMeters)
}

func TestAssess_NegativeElevation(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/assessments",
		`{"elevation_meters":-10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non-negative")
}

func TestAssess_MalformedBody(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/assessments", `not-json{{{`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess_PlaceNotFound(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrPlaceNotFound}
	rec := doRequest(t, testServer(resolver), http.MethodPost, "/api/v1/assessments",
		`{"place":"Atlantis"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssess_ResolverFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("upstream timeout")}
	rec := doRequest(t, testServer(resolver), http.MethodPost, "/api/v1/assessments",
		`{"place":"Cusco"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestClassify(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/elevation/classify?meters=2500", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var category domain.AltitudeCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	assert.Equal(t, "High Altitude", category.Name)
	assert.Equal(t, domain.RiskModerate, category.Risk)
}

func TestClassify_MissingMeters(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/elevation/classify", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassify_NegativeMeters(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/elevation/classify?meters=-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassify_UnknownGuideline(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/elevation/classify?meters=100&guideline=wms-1999", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScore_Binary(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/symptoms/score",
		`{"symptoms":{"headache":true,"nausea":true}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var severity domain.SeverityScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &severity))
	assert.Equal(t, 2, severity.LakeLouiseScore)
	assert.Equal(t, domain.NoAMS, severity.Classification)
	assert.False(t, severity.IsEmergency)
}

func TestScore_Emergency(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/symptoms/score",
		`{"symptoms":{"ataxia":true}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var severity domain.SeverityScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &severity))
	assert.True(t, severity.IsEmergency)
}

func TestScore_Graded(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/symptoms/score",
		`{"scale":"graded","grades":{"headache":3,"gastrointestinal_upset":3,"fatigue":1}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var severity domain.SeverityScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &severity))
	assert.Equal(t, 7, severity.LakeLouiseScore)
	assert.Equal(t, domain.Severe, severity.Classification)
}

func TestScore_GradeOutOfRange(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/symptoms/score",
		`{"scale":"graded","grades":{"headache":5}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookup(t *testing.T) {
	resolver := &stubResolver{
		result: domain.PlaceElevation{PlaceName: "Lhasa", ElevationMeters: 3656},
	}
	rec := doRequest(t, testServer(resolver), http.MethodGet, "/api/v1/locations?name=Lhasa", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var place domain.PlaceElevation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &place))
	assert.Equal(t, 3656.0, place.ElevationMeters)
}

func TestLookup_MissingName(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/locations", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookup_Disabled(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/locations?name=Cusco", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestConditions_List(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/conditions", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var conditions []domain.Condition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conditions))
	assert.Len(t, conditions, 3)
}

func TestConditions_Detail(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/conditions/acute_mountain_sickness", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var condition domain.Condition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &condition))
	assert.Equal(t, "Acute Mountain Sickness (AMS)", condition.Name)
}

func TestConditions_DetailNotFound(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/conditions/trench_foot", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConditions_Prevention(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/conditions/high_altitude_cerebral_edema/prevention", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "acclimatization")
}

func TestConditions_Treatment(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodGet, "/api/v1/conditions/high_altitude_pulmonary_edema/treatment", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DESCENT")
}

func TestConditions_Search(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/conditions/search",
		`{"query":"cough"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []domain.ConditionSummary `json:"results"`
		Count   int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "high_altitude_pulmonary_edema", resp.Results[0].ID)
}

func TestConditions_SearchEmptyQuery(t *testing.T) {
	rec := doRequest(t, testServer(nil), http.MethodPost, "/api/v1/conditions/search", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
