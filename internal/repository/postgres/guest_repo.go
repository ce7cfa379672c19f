package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"rsvp/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{
		DB: db,
	}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	id := uuid.New().String()
	query := `
		INSERT INTO rsvps (id, event_id, name, response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.DB.ExecContext(ctx, query, id, g.EventID, g.Name, string(g.Response), g.CreatedAt); err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *guestRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	query := `
		SELECT id, event_id, name, response, created_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var response string
		if err := rows.Scan(&g.ID, &g.EventID, &g.Name, &response, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Response = domain.Response(response)
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Delete(ctx context.Context, eventID, guestID string) error {
	if _, err := uuid.Parse(guestID); err != nil {
		return domain.ErrNotFound
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rsvps WHERE id = $1 AND event_id = $2`, guestID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
