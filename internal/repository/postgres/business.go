package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/model"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
)

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, name, description, phone, category, created_at, updated_at
		FROM businesses
		WHERE id = $1 AND deleted_at IS NULL
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	address, err := r.getAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	business.Address = address
	return &business, nil
}

func (r *businessRepository) List(ctx context.Context) ([]*model.Business, error) {
	query := `
		SELECT id, name, description, phone, category, created_at, updated_at
		FROM businesses
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	businesses := []*model.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// ListWithAddresses fetches businesses with their address joined in one
// round trip; a business without an address row still comes back, with
// Address left nil.
func (r *businessRepository) ListWithAddresses(ctx context.Context) ([]*model.Business, error) {
	query := `
		SELECT b.id, b.name, b.description, b.phone, b.category,
			   b.created_at, b.updated_at,
			   a.id AS addr_id, a.street, a.city, a.state, a.postal_code,
			   a.latitude, a.longitude
		FROM businesses b
		LEFT JOIN addresses a ON a.business_id = b.id AND a.deleted_at IS NULL
		WHERE b.deleted_at IS NULL
		ORDER BY b.name
	`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses with addresses: %w", err)
	}
	defer rows.Close()

	businesses := []*model.Business{}
	for rows.Next() {
		var b model.Business
		var addrID *uuid.UUID
		var street, city, state, postalCode *string
		var lat, lng *float64

		if err := rows.Scan(
			&b.ID, &b.Name, &b.Description, &b.Phone, &b.Category,
			&b.CreatedAt, &b.UpdatedAt,
			&addrID, &street, &city, &state, &postalCode,
			&lat, &lng,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}

		if addrID != nil {
			b.Address = &model.Address{
				BusinessID: b.ID,
				Latitude:   lat,
				Longitude:  lng,
			}
			b.Address.ID = *addrID
			if street != nil {
				b.Address.Street = *street
			}
			if city != nil {
				b.Address.City = *city
			}
			if state != nil {
				b.Address.State = *state
			}
			if postalCode != nil {
				b.Address.PostalCode = *postalCode
			}
		}
		businesses = append(businesses, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read business rows: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) ListProfessionals(ctx context.Context, businessID uuid.UUID) ([]*model.Professional, error) {
	query := `
		SELECT id, business_id, name, specialty, is_active, created_at, updated_at
		FROM professionals
		WHERE business_id = $1 AND is_active = TRUE AND deleted_at IS NULL
		ORDER BY name
	`
	professionals := []*model.Professional{}
	if err := r.db.SelectContext(ctx, &professionals, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}

func (r *businessRepository) getAddress(ctx context.Context, businessID uuid.UUID) (*model.Address, error) {
	query := `
		SELECT id, business_id, street, city, state, postal_code, latitude, longitude,
			   created_at, updated_at
		FROM addresses
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	var address model.Address
	if err := r.db.GetContext(ctx, &address, query, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}
