package checkout

import (
	"errors"
	"time"

	"github.com/AldeiaHub/Aldeia/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the slice of local persistence the checkout pipeline needs.
type Store interface {
	GetPlan(planID uint) (*models.Plan, error)
	GetStoredProfile(userID uint) (*StoredProfile, error)
	CreateSubscription(sub *models.Subscription) error
	BackfillProfile(userID uint, resolved *ResolvedCustomer) error
	CreatePrimaryAddress(userID uint, resolved *ResolvedCustomer) error
	CreatePrimaryContact(userID uint, resolved *ResolvedCustomer) error
	AppendActivity(entry *models.ActivityLog) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a checkout store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetPlan(planID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetStoredProfile assembles the fallback customer data from the user, the
// billing profile and the primary address. Absent rows leave their fields
// empty rather than failing the lookup.
func (s *gormStore) GetStoredProfile(userID uint) (*StoredProfile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	stored := &StoredProfile{
		Name:  user.Name,
		Email: user.Email,
	}

	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		if profile.FullName != "" {
			stored.Name = profile.FullName
		}
		stored.CpfCnpj = profile.CpfCnpj
		stored.Phone = profile.Phone
		stored.City = profile.City
		stored.State = profile.State
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var address models.Address
	err = s.db.Where("user_id = ? AND is_primary = ?", userID, true).First(&address).Error
	if err == nil {
		stored.PostalCode = address.PostalCode
		stored.Address = address.Street
		stored.AddressNumber = address.Number
		stored.Complement = address.Complement
		stored.Province = address.Neighborhood
		if stored.City == "" {
			stored.City = address.City
		}
		if stored.State == "" {
			stored.State = address.State
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stored, nil
}

func (s *gormStore) CreateSubscription(sub *models.Subscription) error {
	return s.db.Create(sub).Error
}

// BackfillProfile upserts the billing profile with resolved values. Only
// non-empty values are written; existing data is never blanked.
func (s *gormStore) BackfillProfile(userID uint, resolved *ResolvedCustomer) error {
	profile := &models.Profile{
		UserID:   userID,
		FullName: resolved.Name,
		CpfCnpj:  resolved.CpfCnpj,
		Phone:    resolved.Phone,
		City:     resolved.City,
		State:    resolved.State,
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	for column, value := range map[string]string{
		"full_name": resolved.Name,
		"cpf_cnpj":  resolved.CpfCnpj,
		"phone":     resolved.Phone,
		"city":      resolved.City,
		"state":     resolved.State,
	} {
		if value != "" {
			updates[column] = value
		}
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(profile).Error
}

func (s *gormStore) CreatePrimaryAddress(userID uint, resolved *ResolvedCustomer) error {
	return s.db.Create(&models.Address{
		UserID:       userID,
		Street:       resolved.Address,
		Number:       resolved.AddressNumber,
		Complement:   resolved.Complement,
		Neighborhood: resolved.Province,
		City:         resolved.City,
		State:        resolved.State,
		PostalCode:   resolved.PostalCode,
		IsPrimary:    true,
	}).Error
}

func (s *gormStore) CreatePrimaryContact(userID uint, resolved *ResolvedCustomer) error {
	return s.db.Create(&models.Contact{
		UserID:    userID,
		Kind:      models.ContactKindPhone,
		Value:     resolved.Phone,
		IsPrimary: true,
	}).Error
}

func (s *gormStore) AppendActivity(entry *models.ActivityLog) error {
	return s.db.Create(entry).Error
}
