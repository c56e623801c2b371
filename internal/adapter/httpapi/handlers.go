package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/service"
)

// assessRequest is the JSON body for POST /api/v1/assessments.
type assessRequest struct {
	ElevationMeters *float64             `json:"elevation_meters,omitempty"`
	Place           string               `json:"place,omitempty"`
	Profile         domain.RiskProfile   `json:"profile"`
	Symptoms        domain.SymptomSet    `json:"symptoms"`
	Scale           domain.ScaleName     `json:"scale,omitempty"`
	Grades          domain.SymptomGrades `json:"grades,omitempty"`
	Guideline       string               `json:"guideline,omitempty"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	result, err := s.assessor.Assess(r.Context(), service.AssessRequest{
		ElevationMeters: req.ElevationMeters,
		Place:           req.Place,
		Profile:         req.Profile,
		Symptoms:        req.Symptoms,
		Scale:           req.Scale,
		Grades:          req.Grades,
		Guideline:       req.Guideline,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	meters, err := strconv.ParseFloat(r.URL.Query().Get("meters"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "meters must be a number")
		return
	}

	guideline := s.assessor.Guideline()
	if name := r.URL.Query().Get("guideline"); name != "" {
		guideline, err = domain.GuidelineByName(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	category, err := domain.ClassifyElevation(guideline, meters)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// scoreRequest is the JSON body for POST /api/v1/symptoms/score.
type scoreRequest struct {
	Symptoms domain.SymptomSet    `json:"symptoms"`
	Scale    domain.ScaleName     `json:"scale,omitempty"`
	Grades   domain.SymptomGrades `json:"grades,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	var severity domain.SeverityScore
	switch req.Scale {
	case domain.ScaleGraded:
		var err error
		severity, err = domain.ScoreGradedSymptoms(req.Grades, req.Symptoms)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
	case domain.ScaleBinary, "":
		severity = domain.ScoreSymptoms(req.Symptoms)
	default:
		writeError(w, http.StatusBadRequest, "unknown scale "+strconv.Quote(string(req.Scale)))
		return
	}
	writeJSON(w, http.StatusOK, severity)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	place, err := s.assessor.Lookup(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

func (s *Server) handleConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Conditions())
}

func (s *Server) handleConditionDetail(w http.ResponseWriter, r *http.Request) {
	condition, ok := domain.ConditionByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "condition not found")
		return
	}
	writeJSON(w, http.StatusOK, condition)
}

// handleConditionGuidelines serves the prevention or treatment guideline list
// for one condition.
func (s *Server) handleConditionGuidelines(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		condition, ok := domain.ConditionByID(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, "condition not found")
			return
		}

		guidelines := condition.PreventionGuidelines
		if kind == "treatment" {
			guidelines = condition.TreatmentGuidelines
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         condition.ID,
			"name":       condition.Name,
			"guidelines": guidelines,
		})
	}
}

// searchRequest is the JSON body for POST /api/v1/conditions/search.
type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleConditionSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "search query is required")
		return
	}

	results := domain.SearchConditions(req.Query)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// writeServiceError maps service and domain errors to HTTP statuses. Invalid
// input is the caller's fault, a missing place is 404, and an unreachable
// upstream is a bad gateway.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPlaceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrElevationUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
