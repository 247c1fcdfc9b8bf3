package models

import "time"

type Product struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:120;index;not null" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	Campus    string    `gorm:"size:80;index" json:"campus"`
	Category  string    `gorm:"size:80" json:"category"`
	ImageURL  *string   `gorm:"size:1024" json:"imageUrl,omitempty"`
	SellerID  *string   `gorm:"size:36;index" json:"sellerId,omitempty"`
	Seller    *User     `gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
