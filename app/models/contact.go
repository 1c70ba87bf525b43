package models

import "time"

const (
	ContactKindPhone = "phone"
	ContactKindEmail = "email"
)

// Contact is a reachable endpoint for a user (phone, email).
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	Value     string    `gorm:"type:varchar(200);not null" json:"value"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
