package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Create relies on the events primary key: a concurrent insert of the same id
// loses with ErrSlugTaken instead of overwriting.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, name, date, description, owner_id, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Name, e.Date, e.Description, e.OwnerID, e.Token, e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, date, description, owner_id, token, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var date time.Time
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &date, &e.Description, &e.OwnerID, &e.Token, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Date = date.Format(domain.DateLayout)
	return e, nil
}

func (r *eventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
