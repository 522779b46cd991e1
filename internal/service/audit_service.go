package service

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// AuditEntry captures one mutation for the audit trail.
type AuditEntry struct {
	ActorID    uint
	ActorRole  tenancy.Role
	Action     string
	EntityType string
	EntityID   *uint
	SchoolID   *uint
	Metadata   map[string]interface{}
}

// AuditRecorder records mutations. Recording must never fail the mutation it
// describes, so Record has no error return; failures are logged.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService exposes the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint, limit int) ([]models.AuditLog, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	nc     *nats.Conn
	logger zerolog.Logger
}

// NewAuditService constructs the audit service. nc may be nil; events are
// then persisted without being published.
func NewAuditService(repo repository.AuditLogRepository, nc *nats.Conn, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		nc:     nc,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	metadata := datatypes.JSONMap{}
	for key, value := range entry.Metadata {
		metadata[key] = value
	}

	model := models.AuditLog{
		ActorID:    entry.ActorID,
		ActorRole:  string(entry.ActorRole),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		SchoolID:   entry.SchoolID,
		Metadata:   metadata,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", entry.Action).Msg("failed to persist audit entry")
		return
	}

	s.publish(entry)
}

func (s *auditService) publish(entry AuditEntry) {
	if s.nc == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode audit event")
		return
	}

	if err := s.nc.Publish("escolar.audit."+entry.Action, payload); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to publish audit event")
	}
}

func (s *auditService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint, limit int) ([]models.AuditLog, error) {
	if claims.Role == tenancy.RoleTeacher {
		return nil, ErrNotPermitted
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.AuditLog{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID, limit)
}
