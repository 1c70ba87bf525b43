package models

import "time"

const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

const PaymentProviderAsaas = "asaas"

// Subscription is the local record of a purchase. It is created as `pending`
// by the checkout pipeline and moved to `active`/`cancelled` by asynchronous
// provider notifications handled elsewhere.
type Subscription struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	PlanID            uint       `gorm:"not null;index" json:"plan_id"`
	BillingCycle      string     `gorm:"type:varchar(16);not null" json:"billing_cycle"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentProvider   string     `gorm:"type:varchar(20);not null;default:'asaas';index:idx_subscriptions_provider_external,priority:1" json:"payment_provider"`
	ExternalPaymentID string     `gorm:"type:varchar(191);not null;index:idx_subscriptions_provider_external,priority:2" json:"external_payment_id"`
	IsRecurring       bool       `gorm:"default:false" json:"is_recurring"`
	ExpiresAt         *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
