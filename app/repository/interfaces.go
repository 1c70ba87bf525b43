package repository

import (
	"github.com/AldeiaHub/Aldeia/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPITokenHash(hash string) (*models.User, error)
	Update(user *models.User) error
}

// PlanRepository defines the interface for plan catalog operations
type PlanRepository interface {
	GetByID(id uint) (*models.Plan, error)
	GetBySlug(slug string) (*models.Plan, error)
	ListActive() ([]models.Plan, error)
}

// SubscriptionRepository defines the interface for local subscription records
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByExternalPaymentID(provider, externalID string) (*models.Subscription, error)
	ListByUserID(userID uint) ([]models.Subscription, error)
}
