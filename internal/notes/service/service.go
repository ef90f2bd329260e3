package service

import (
	"context"

	"crm_backend/internal/events"
	"crm_backend/internal/notes/repository"
	"crm_backend/internal/notes/transport"
	"crm_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for notes.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a new notes service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus used for stale-view signaling.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

func (s *Service) List(ctx context.Context) (transport.NoteListResponse, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return transport.NoteListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list notes", err)
	}
	return toNoteListResponse(notes), nil
}

// ListByRelated returns the notes attached to a single lead or customer.
func (s *Service) ListByRelated(ctx context.Context, relatedType string, relatedID uuid.UUID) (transport.NoteListResponse, error) {
	if !repository.IsValidRelatedType(relatedType) {
		return transport.NoteListResponse{}, apperr.Validation("unknown related type: " + relatedType)
	}

	notes, err := s.repo.ListByRelated(ctx, relatedType, relatedID)
	if err != nil {
		return transport.NoteListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list related notes", err)
	}
	return toNoteListResponse(notes), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateNoteRequest) (transport.NoteResponse, error) {
	var relatedID *uuid.UUID
	if req.RelatedID != nil {
		parsed, err := uuid.Parse(*req.RelatedID)
		if err != nil {
			return transport.NoteResponse{}, apperr.Validation("invalid related id")
		}
		relatedID = &parsed
	}
	// Attachment requires both halves or neither.
	if (req.RelatedType == nil) != (relatedID == nil) {
		return transport.NoteResponse{}, apperr.Validation("related_type and related_id must be provided together")
	}

	note, err := s.repo.Create(ctx, repository.CreateNoteParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		RelatedType: req.RelatedType,
		RelatedID:   relatedID,
	})
	if err != nil {
		return transport.NoteResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create note", err)
	}

	s.signalStale(ctx)
	return toNoteResponse(note), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateNoteRequest) (transport.NoteResponse, error) {
	note, err := s.repo.Update(ctx, id, repository.UpdateNoteParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.NoteResponse{}, apperr.NotFound("note not found")
		}
		return transport.NoteResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update note", err)
	}

	s.signalStale(ctx)
	return toNoteResponse(note), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("note not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete note", err)
	}

	s.signalStale(ctx)
	return nil
}

func (s *Service) signalStale(ctx context.Context) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ViewsStale{
		BaseEvent: events.NewBaseEvent(),
		Views:     []string{events.ViewNotes, events.ViewDashboard},
	})
}

func toNoteResponse(note repository.Note) transport.NoteResponse {
	return transport.NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Description: note.Description,
		DueDate:     note.DueDate,
		RelatedType: note.RelatedType,
		RelatedID:   note.RelatedID,
		CreatedAt:   note.CreatedAt,
	}
}

func toNoteListResponse(notes []repository.Note) transport.NoteListResponse {
	items := make([]transport.NoteResponse, len(notes))
	for i, note := range notes {
		items[i] = toNoteResponse(note)
	}
	return transport.NoteListResponse{Items: items}
}
