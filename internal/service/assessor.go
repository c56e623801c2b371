// Package service orchestrates elevation resolution, classification, and
// audit publishing around the domain engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
)

// ErrElevationUnavailable reports that a place could not be turned into an
// elevation. The details (network failure, malformed upstream response) stay
// with the resolver; callers only see that the elevation is unavailable.
var ErrElevationUnavailable = errors.New("elevation unavailable")

// Auditor publishes completed assessments.
type Auditor interface {
	Publish(ctx context.Context, assessment domain.Assessment) error
}

// Pinger verifies a dependency connection, used by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AssessRequest is one assessment request. Exactly one of ElevationMeters or
// Place must be supplied; an explicit elevation wins when both are present.
type AssessRequest struct {
	ElevationMeters *float64
	Place           string
	Profile         domain.RiskProfile
	Symptoms        domain.SymptomSet
	Scale           domain.ScaleName
	Grades          domain.SymptomGrades
	Guideline       string
}

// AssessResult pairs the assessment with the resolved place, when the
// elevation came from a lookup.
type AssessResult struct {
	Assessment domain.Assessment      `json:"assessment"`
	Place      *domain.PlaceElevation `json:"place,omitempty"`
}

const auditTimeout = 2 * time.Second

// Assessor wires the domain engine to its collaborators. The resolver and
// auditor are optional; a nil resolver disables place lookups and a nil
// auditor disables audit publishing.
type Assessor struct {
	guideline domain.Guideline
	resolver  domain.ElevationResolver
	auditor   Auditor
	pinger    Pinger
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates an Assessor evaluating with the given default guideline.
func New(guideline domain.Guideline, resolver domain.ElevationResolver, auditor Auditor, pinger Pinger, metrics *observability.Metrics, logger *slog.Logger) *Assessor {
	return &Assessor{
		guideline: guideline,
		resolver:  resolver,
		auditor:   auditor,
		pinger:    pinger,
		metrics:   metrics,
		logger:    logger,
	}
}

// Guideline returns the default guideline the assessor evaluates with.
func (a *Assessor) Guideline() domain.Guideline {
	return a.guideline
}

// CheckReadiness reports whether the service can serve traffic. The engine is
// stateless, so readiness reduces to the optional shared cache connection.
func (a *Assessor) CheckReadiness(ctx context.Context) error {
	if a.pinger == nil {
		return nil
	}
	return a.pinger.Ping(ctx)
}

// Assess runs one full assessment: resolve the elevation if needed, evaluate,
// and publish the audit record. Audit failure never fails the assessment.
func (a *Assessor) Assess(ctx context.Context, req AssessRequest) (AssessResult, error) {
	guideline := a.guideline
	if req.Guideline != "" {
		var err error
		guideline, err = domain.GuidelineByName(req.Guideline)
		if err != nil {
			a.metrics.InvalidInputs.Inc()
			return AssessResult{}, err
		}
	}

	elevation, place, err := a.resolveElevation(ctx, req)
	if err != nil {
		return AssessResult{}, err
	}

	assessment, err := domain.Evaluate(guideline, domain.AssessmentInput{
		ElevationMeters: elevation,
		Profile:         req.Profile,
		Symptoms:        req.Symptoms,
		Scale:           req.Scale,
		Grades:          req.Grades,
	})
	if err != nil {
		a.metrics.InvalidInputs.Inc()
		return AssessResult{}, err
	}

	a.metrics.Assessments.WithLabelValues(string(assessment.Risk.Level)).Inc()
	if assessment.Severity.IsEmergency {
		a.metrics.EmergencyFlags.Inc()
	}

	a.publishAudit(ctx, assessment)

	return AssessResult{Assessment: assessment, Place: place}, nil
}

// Lookup resolves a place name without running an assessment.
func (a *Assessor) Lookup(ctx context.Context, name string) (domain.PlaceElevation, error) {
	if a.resolver == nil {
		return domain.PlaceElevation{}, fmt.Errorf("place lookup disabled: %w", ErrElevationUnavailable)
	}
	result, err := a.resolver.ResolvePlace(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrPlaceNotFound) {
			return domain.PlaceElevation{}, err
		}
		return domain.PlaceElevation{}, fmt.Errorf("%w: %v", ErrElevationUnavailable, err)
	}
	return result, nil
}

func (a *Assessor) resolveElevation(ctx context.Context, req AssessRequest) (float64, *domain.PlaceElevation, error) {
	if req.ElevationMeters != nil {
		return *req.ElevationMeters, nil, nil
	}
	if req.Place == "" {
		a.metrics.InvalidInputs.Inc()
		return 0, nil, fmt.Errorf("either an elevation or a place is required: %w", domain.ErrInvalidElevation)
	}

	place, err := a.Lookup(ctx, req.Place)
	if err != nil {
		return 0, nil, err
	}
	return place.ElevationMeters, &place, nil
}

// publishAudit best-effort publishes the assessment. Failures are logged and
// counted but never surfaced to the caller.
func (a *Assessor) publishAudit(ctx context.Context, assessment domain.Assessment) {
	if a.auditor == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()

	if err := a.auditor.Publish(publishCtx, assessment); err != nil {
		a.logger.Warn("audit publish failed",
			"assessment_id", assessment.ID,
			"risk_level", assessment.Risk.Level,
			"error", err,
		)
		a.metrics.AuditPublishes.WithLabelValues("error").Inc()
		return
	}
	a.metrics.AuditPublishes.WithLabelValues("success").Inc()
}
