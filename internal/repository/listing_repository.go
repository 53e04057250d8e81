package repository

import (
	"context"
	"errors"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/listing"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostgresListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &PostgresListingRepository{db: db}
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, error) {
	var l listing.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return listing.Listing{}, nhatro_errors.ErrNotFound
		}
		return listing.Listing{}, err
	}
	return l, nil
}

// Match filters published listings by the parsed criteria. Every criterion
// is optional; amenities use array containment so all requested tags must
// be present.
func (r *PostgresListingRepository) Match(ctx context.Context, criteria assistant.Criteria, limit int) ([]listing.Listing, error) {
	q := r.db.WithContext(ctx).
		Model(&listing.Listing{}).
		Where("status = ?", listing.StatusPublished)

	if criteria.District != "" {
		q = q.Where("district ILIKE ?", "%"+criteria.District+"%")
	}
	if criteria.City != "" {
		q = q.Where("city ILIKE ?", "%"+criteria.City+"%")
	}
	if criteria.MinPrice != nil {
		q = q.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		q = q.Where("price <= ?", *criteria.MaxPrice)
	}
	if criteria.MinArea != nil {
		q = q.Where("area >= ?", *criteria.MinArea)
	}
	if criteria.MaxArea != nil {
		q = q.Where("area <= ?", *criteria.MaxArea)
	}
	if criteria.Type != "" {
		q = q.Where("type = ?", criteria.Type)
	}
	if len(criteria.Amenities) > 0 {
		q = q.Where("amenities @> ?", pq.StringArray(criteria.Amenities))
	}

	var listings []listing.Listing
	err := q.Order("created_at DESC").Limit(limit).Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *PostgresListingRepository) Recent(ctx context.Context, limit int) ([]listing.Listing, error) {
	var listings []listing.Listing
	err := r.db.WithContext(ctx).
		Where("status = ?", listing.StatusPublished).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}
