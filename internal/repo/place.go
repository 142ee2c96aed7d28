package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// PlaceRepo defines the persistence operations for Places (saved cities and
// points of interest belonging to a trip).
type PlaceRepo interface {
	// Create inserts a new place and returns the persisted record.
	Create(ctx context.Context, place domain.Place) (domain.Place, error)

	// GetByID retrieves a single place by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no such place exists under that trip.
	GetByID(ctx context.Context, tripID, placeID uuid.UUID) (domain.Place, error)

	// ListByTripID returns all places for a trip in creation order, so the
	// first saved place is the trip's destination.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Place, error)

	// Delete removes a place by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, placeID uuid.UUID) error
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, trip_id, name, kind, lat, lon, notes, created_at, updated_at`

// Create inserts a new place row and returns the full persisted record.
func (r *pgPlaceRepo) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (trip_id, name, kind, lat, lon, notes)
		VALUES (@trip_id, @name, @kind, @lat, @lon, @notes)
		RETURNING ` + placeColumns

	args := pgx.NamedArgs{
		"trip_id": place.TripID,
		"name":    place.Name,
		"kind":    string(place.Kind),
		"lat":     place.Lat,
		"lon":     place.Lon,
		"notes":   place.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlace(row)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a place by primary key, scoped to its trip.
func (r *pgPlaceRepo) GetByID(ctx context.Context, tripID, placeID uuid.UUID) (domain.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": placeID, "trip_id": tripID})
	result, err := scanPlace(row)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all places for a trip ordered by created_at ascending.
func (r *pgPlaceRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlaceRepo.ListByTripID: scan: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByTripID: rows: %w", err)
	}

	return places, nil
}

// Delete removes a place by primary key, scoped to its trip.
func (r *pgPlaceRepo) Delete(ctx context.Context, tripID, placeID uuid.UUID) error {
	const q = `DELETE FROM places WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": placeID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPlace maps a single database row into a domain.Place.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p      domain.Place
		id     pgtype.UUID
		tripID pgtype.UUID
		kind   string
	)

	err := s.Scan(&id, &tripID, &p.Name, &kind, &p.Lat, &p.Lon, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Kind = domain.PlaceKind(kind)
	return p, nil
}
