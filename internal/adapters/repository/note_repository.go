package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/ports"
)

const noteColumns = `id, author_id, priority, content, date, is_completed,
		completed_at, edited_at, created_at, updated_at`

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new handover note repository
func NewNoteRepository(db *sqlx.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entities.HandoverNote) error {
	query := `
		INSERT INTO handover_notes (id, author_id, priority, content, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.AuthorID, note.Priority, note.Content, note.Date,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.HandoverNote, error) {
	query := `SELECT ` + noteColumns + ` FROM handover_notes WHERE id = $1`

	var note entities.HandoverNote
	err := r.db.GetContext(ctx, &note, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entities.HandoverNote) error {
	query := `
		UPDATE handover_notes
		SET priority = $2, content = $3, is_completed = $4, completed_at = $5,
			edited_at = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Priority, note.Content, note.IsCompleted,
		note.CompletedAt, note.EditedAt,
	).Scan(&note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrNoteNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM handover_notes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

func (r *NoteRepositoryImpl) ListByDate(ctx context.Context, date string) ([]*entities.HandoverNote, error) {
	query := `SELECT ` + noteColumns + `
		FROM handover_notes
		WHERE date = $1
		ORDER BY created_at`

	var notes []*entities.HandoverNote
	err := r.db.SelectContext(ctx, &notes, query, date)
	if err != nil {
		return nil, fmt.Errorf("list notes by date: %w", err)
	}

	return notes, nil
}

func (r *NoteRepositoryImpl) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.HandoverNote, error) {
	query := `SELECT ` + noteColumns + `
		FROM handover_notes
		WHERE author_id = $1
		ORDER BY created_at DESC`

	var notes []*entities.HandoverNote
	err := r.db.SelectContext(ctx, &notes, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list notes by author: %w", err)
	}

	return notes, nil
}
