package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"campus_market/internal/models"
)

// ProductFilter narrows ListProducts; empty fields match everything.
type ProductFilter struct {
	Campus   string
	Category string
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	q := s.db.WithContext(ctx)
	if filter.Campus != "" {
		q = q.Where("campus = ?", filter.Campus)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (s *Store) ProductsBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "products by seller")
	}
	return products, nil
}

// CreateProduct assigns an id and creation time when missing.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(p).Error, "create product")
}

// DeleteProduct removes a product owned by sellerID.
func (s *Store) DeleteProduct(ctx context.Context, id, sellerID string) error {
	var p models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return errors.Wrap(notFound(err), "delete product")
	}
	if p.SellerID == nil || *p.SellerID != sellerID {
		return ErrForbidden
	}
	return errors.Wrap(s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error, "delete product")
}

// ProductsByIDs returns the products found among ids, keyed by id.
func (s *Store) ProductsByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "products by ids")
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}
