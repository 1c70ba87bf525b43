package models

import "time"

// Profile holds the billing-relevant customer data collected during checkout.
// Fields are backfilled best-effort and never blanked once set.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	FullName  string    `gorm:"type:varchar(150)" json:"full_name"`
	CpfCnpj   string    `gorm:"type:varchar(14)" json:"cpf_cnpj"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	State     string    `gorm:"type:varchar(2)" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
