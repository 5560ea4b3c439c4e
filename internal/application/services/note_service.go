package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/infrastructure/logger"
	"github.com/shiftdesk/core/internal/ports"
)

// NoteService handles handover note operations
type NoteService struct {
	noteRepo ports.NoteRepository
	logger   *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo ports.NoteRepository, logger *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// CreateNote posts a new handover note for the given shift date.
func (s *NoteService) CreateNote(ctx context.Context, req ports.CreateNoteRequest, authorID uuid.UUID) (*entities.HandoverNote, error) {
	note := &entities.HandoverNote{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Priority:  req.Priority,
		Content:   req.Content,
		Date:      req.Date,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Infow("Handover note created", "note_id", note.ID, "date", note.Date, "author_id", authorID)

	return note, nil
}

// GetNote retrieves a note by ID
func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*entities.HandoverNote, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// UpdateNote edits a note's content or priority and stamps the edit time.
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, req ports.UpdateNoteRequest) (*entities.HandoverNote, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Priority != nil {
		note.Priority = *req.Priority
	}

	now := time.Now()
	note.EditedAt = &now
	note.UpdatedAt = now

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote removes a note permanently.
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Handover note deleted", "note_id", id)

	return nil
}

// ListNotesByDate returns all notes for a shift date (YYYY-MM-DD).
func (s *NoteService) ListNotesByDate(ctx context.Context, date string) ([]*entities.HandoverNote, error) {
	notes, err := s.noteRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// SetCompleted toggles a note's completion state.
func (s *NoteService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*entities.HandoverNote, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note.IsCompleted = completed
	now := time.Now()
	if completed {
		note.CompletedAt = &now
	} else {
		note.CompletedAt = nil
	}
	note.UpdatedAt = now

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}
