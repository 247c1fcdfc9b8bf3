package models

import "time"

// Order is written once, together with its items, and never updated.
// Total is the coupon-adjusted sum of the items' Price*Qty at creation time.
type Order struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	Campus     string      `gorm:"size:80;index" json:"campus"`
	Pickup     string      `gorm:"size:160" json:"pickup"`
	Total      int         `gorm:"not null" json:"total"`
	CouponCode *string     `gorm:"size:40;index" json:"couponCode"`
	Discount   int         `gorm:"not null;default:0" json:"discount"`
	BuyerPhone *string     `gorm:"size:40" json:"buyerPhone,omitempty"`
	BuyerID    *string     `gorm:"size:36;index" json:"buyerId,omitempty"`
	Buyer      *User       `gorm:"foreignKey:BuyerID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt  time.Time   `gorm:"index" json:"createdAt"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem.Price is a snapshot of the unit price paid, not a join on the live product.
// ProductID is left unconstrained so orders survive product deletion.
type OrderItem struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string `gorm:"size:36;index;not null" json:"orderId"`
	ProductID string `gorm:"size:64;index" json:"productId"`
	Name      string `gorm:"size:120" json:"name"`
	Qty       int    `gorm:"not null" json:"qty"`
	Price     int    `gorm:"not null" json:"price"`
}

func (i OrderItem) LineTotal() int {
	return i.Price * i.Qty
}
