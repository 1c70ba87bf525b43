package models

import "time"

// Address is a postal address attached to a user. The checkout pipeline
// inserts the billing address as the primary one.
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Street       string    `gorm:"type:varchar(150)" json:"street"`
	Number       string    `gorm:"type:varchar(20)" json:"number"`
	Complement   string    `gorm:"type:varchar(100)" json:"complement"`
	Neighborhood string    `gorm:"type:varchar(100)" json:"neighborhood"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	State        string    `gorm:"type:varchar(2)" json:"state"`
	PostalCode   string    `gorm:"type:varchar(9)" json:"postal_code"`
	IsPrimary    bool      `gorm:"default:false;index" json:"is_primary"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
