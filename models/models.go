package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LicenseStatusActive   = "active"
	LicenseStatusRefunded = "refunded"
	LicenseStatusExpired  = "expired"
)

const (
	ProductTypeMonthly  = "monthly"
	ProductTypeLifetime = "lifetime"
)

// LifetimeExpiry is the far-future sentinel stored on lifetime licenses.
var LifetimeExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

type License struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid"`
	LicenseKey      string
	Status          string
	ProductType     string
	ExpiresAt       time.Time
	UserEmail       string
	PolarOrderID    string `gorm:"uniqueIndex"`
	PolarProductID  *string
	PolarCustomerID *string
	PaidAmountCents *int64
	PaidCurrency    *string
	Source          string
	CreatedAt       time.Time
}

func (l *License) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LicenseActivation is a device binding under a license. Rows are created
// by the desktop activation flow; this service only ever deactivates them.
type LicenseActivation struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	LicenseID         uuid.UUID `gorm:"type:uuid;index"`
	DeactivatedAt     *time.Time
	DeactivatedReason *string
	CreatedAt         time.Time
}

func (a *LicenseActivation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Profile is the registered user record. Read-only here; signup owns it.
type Profile struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
