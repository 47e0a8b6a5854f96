package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations are composed by the
// repository layer via applySpecifications.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
