package models

import "time"

const (
	ActivitySubscriptionCreated = "subscription_created"
	ActivityProfileUpdated      = "profile_updated"
	ActivityAddressAdded        = "address_added"
	ActivityContactAdded        = "contact_added"
)

// ActivityLog is an append-only audit record. Writes are best-effort; a
// failed append never surfaces to the request that triggered it.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
