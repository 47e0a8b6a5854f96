package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByUserID filters by the platform user id column.
type ByUserID struct {
	UserID int64
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByAdminID filters the admins table by platform id.
type ByAdminID struct {
	AdminID int64
}

func (s ByAdminID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("admin_id = ?", s.AdminID)
}

// ActivePlans keeps only catalog-visible plans.
type ActivePlans struct{}

func (s ActivePlans) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// PendingPayments keeps only unresolved payments.
type PendingPayments struct{}

func (s PendingPayments) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", "pending")
}

// UnusedCode matches a redeemable code by its normalized text.
type UnusedCode struct {
	Code string
}

func (s UnusedCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ? AND used_status = ?", s.Code, false)
}

// WithExpirySet keeps users the expiry sweep has to look at.
type WithExpirySet struct{}

func (s WithExpirySet) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_expiry IS NOT NULL")
}

// ExpiryOnOrBefore keeps users whose expiry falls at or before the cutoff.
type ExpiryOnOrBefore struct {
	Cutoff time.Time
}

func (s ExpiryOnOrBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_expiry <= ?", s.Cutoff)
}
