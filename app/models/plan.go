package models

import (
	"strings"
	"time"
)

const (
	BillingCycleMonthly    = "monthly"
	BillingCycleYearly     = "yearly"
	BillingCycleSemiannual = "6-monthly"
)

const (
	PaymentMethodPix        = "PIX"
	PaymentMethodBoleto     = "BOLETO"
	PaymentMethodCreditCard = "CREDIT_CARD"
)

// Plan is a catalog entry. Prices are stored per billing cycle; the checkout
// pipeline reads plans but never writes them.
type Plan struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Slug            string    `gorm:"type:varchar(100);uniqueIndex" json:"slug" validate:"required,min=2,max=100"`
	Description     string    `gorm:"type:text" json:"description"`
	PriceMonthly    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_monthly"`
	PriceYearly     float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_yearly"`
	PriceSemiannual float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_semiannual"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PriceFor returns the plan price for a billing cycle. Unknown cycles fall
// back to the monthly price.
func (p *Plan) PriceFor(cycle string) float64 {
	switch NormalizeBillingCycle(cycle) {
	case BillingCycleYearly:
		return p.PriceYearly
	case BillingCycleSemiannual:
		return p.PriceSemiannual
	default:
		return p.PriceMonthly
	}
}

func NormalizeBillingCycle(cycle string) string {
	switch strings.ToLower(strings.TrimSpace(cycle)) {
	case BillingCycleYearly:
		return BillingCycleYearly
	case BillingCycleSemiannual, "semiannual", "semi-annual":
		return BillingCycleSemiannual
	case BillingCycleMonthly:
		return BillingCycleMonthly
	default:
		return ""
	}
}

func NormalizePaymentMethod(method string) string {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case PaymentMethodPix:
		return PaymentMethodPix
	case PaymentMethodBoleto:
		return PaymentMethodBoleto
	case PaymentMethodCreditCard:
		return PaymentMethodCreditCard
	default:
		return ""
	}
}
