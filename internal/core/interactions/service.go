package interactions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parishfeed/internal/events"
)

// Service defines the business logic interface for the interaction ledger
type Service interface {
	// Toggle flips a like or bookmark on a visible subject and returns the
	// resulting state together with fresh aggregate counts. Calling twice in a
	// row alternates active/inactive; it never errors on repetition.
	Toggle(ctx context.Context, req ToggleRequest) (*ToggleResponse, error)

	// RecordShare appends a share event for a visible subject
	RecordShare(ctx context.Context, subjectType SubjectType, subjectID, actorID string) (*Counts, error)

	// CountsFor returns the aggregate counters for a subject
	CountsFor(ctx context.Context, subjectType SubjectType, subjectID string) (*Counts, error)
}

// ToggleRequest identifies the ledger key to flip
type ToggleRequest struct {
	SubjectType SubjectType `json:"subjectType"`
	SubjectID   string      `json:"subjectId"`
	ActorID     string      `json:"-"`
	Kind        Kind        `json:"kind"`
}

// ToggleResponse reports the state after the toggle plus current counts
type ToggleResponse struct {
	State  ToggleState `json:"state"`
	Counts Counts      `json:"counts"`
}

// ledgerService implements the Service interface
type ledgerService struct {
	repo      Repository
	resolver  SubjectResolver
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new interaction ledger service
func NewService(repo Repository, resolver SubjectResolver, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &ledgerService{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ledgerService) Toggle(ctx context.Context, req ToggleRequest) (*ToggleResponse, error) {
	if req.Kind != KindLike && req.Kind != KindBookmark {
		return nil, ErrInvalidKind
	}

	subject, err := s.resolveVisible(ctx, req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.Toggle(ctx, req.SubjectType, req.SubjectID, req.ActorID, req.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle %s: %w", req.Kind, err)
	}

	counts, err := s.repo.Counts(ctx, req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}

	state := StateInactive
	if active {
		state = StateActive
	}

	s.logger.Info("interaction toggled",
		"subject_type", req.SubjectType,
		"subject_id", req.SubjectID,
		"actor", req.ActorID,
		"kind", req.Kind,
		"state", state)

	// Only activation is worth announcing; un-likes are nobody's business
	if active {
		s.publisher.Publish(ctx, events.Event{
			Kind:       events.KindInteractionOccurred,
			SubjectID:  req.SubjectID,
			AudienceID: subject.AuthorID,
			OccurredAt: time.Now().UTC(),
		})
	}

	return &ToggleResponse{State: state, Counts: *counts}, nil
}

func (s *ledgerService) RecordShare(ctx context.Context, subjectType SubjectType, subjectID, actorID string) (*Counts, error) {
	subject, err := s.resolveVisible(ctx, subjectType, subjectID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertShare(ctx, subjectType, subjectID, actorID); err != nil {
		return nil, fmt.Errorf("failed to record share: %w", err)
	}

	counts, err := s.repo.Counts(ctx, subjectType, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}

	s.logger.Info("share recorded",
		"subject_type", subjectType,
		"subject_id", subjectID,
		"actor", actorID)

	s.publisher.Publish(ctx, events.Event{
		Kind:       events.KindInteractionOccurred,
		SubjectID:  subjectID,
		AudienceID: subject.AuthorID,
		OccurredAt: time.Now().UTC(),
	})

	return counts, nil
}

func (s *ledgerService) CountsFor(ctx context.Context, subjectType SubjectType, subjectID string) (*Counts, error) {
	if _, err := s.resolveVisible(ctx, subjectType, subjectID); err != nil {
		return nil, err
	}

	counts, err := s.repo.Counts(ctx, subjectType, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}
	return counts, nil
}

// resolveVisible resolves the subject and enforces that it is interactable
func (s *ledgerService) resolveVisible(ctx context.Context, subjectType SubjectType, subjectID string) (*Subject, error) {
	if !ValidSubjectType(subjectType) {
		return nil, ErrInvalidSubjectType
	}
	if subjectID == "" {
		return nil, ErrSubjectNotFound
	}

	subject, err := s.resolver.ResolveSubject(ctx, subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil || !subject.Visible {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}
