package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"campus_market/internal/models"
)

// CreateOrder writes the order and all of its items in one transaction.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
		order.Items[i].OrderID = order.ID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		defer func() { order.Items = items }()

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "create order")
}

func (s *Store) OrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "orders by buyer")
	}
	return orders, nil
}

// OrdersForSeller returns orders that contain at least one of the seller's
// products, with each order's items narrowed to those products.
func (s *Store) OrdersForSeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	db := s.db.WithContext(ctx)
	sellerProducts := db.Model(&models.Product{}).Select("id").Where("seller_id = ?", sellerID)
	orderIDs := db.Model(&models.OrderItem{}).Select("order_id").Where("product_id IN (?)", sellerProducts)

	orders := []models.Order{}
	err := db.
		Preload("Items", "product_id IN (?)", sellerProducts).
		Where("id IN (?)", orderIDs).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "orders for seller")
	}
	return orders, nil
}

// OrdersBetween returns orders created in [from, to], oldest first.
func (s *Store) OrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "orders between")
	}
	return orders, nil
}

// RecentOrders returns the newest limit orders with their items.
func (s *Store) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "recent orders")
	}
	return orders, nil
}
