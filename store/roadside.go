package store

import (
	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/roadside-api/schema"
)

// RoadsideCore is the relational datastore of registered accounts
type RoadsideCore interface {
	Ping() error

	// Account
	CreateAccount(accountID, displayName, role string) (*schema.Account, error)
	GetAccount(accountID string) (*schema.Account, error)
	UpdateAccountGeoPosition(accountID string, latitude, longitude float64) error
}

// RoadsideStore is an implementation of RoadsideCore
type RoadsideStore struct {
	ormDB *gorm.DB
}

func NewRoadsideStore(ormDB *gorm.DB) *RoadsideStore {
	return &RoadsideStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *RoadsideStore) Ping() error {
	return s.ormDB.DB().Ping()
}
