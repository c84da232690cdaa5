package store

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bitmark-inc/roadside-api/schema"
)

var (
	ErrAccountTaken = fmt.Errorf("the account has been registered")
	ErrInvalidRole  = fmt.Errorf("unknown account role")
)

// CreateAccount is to register an account into roadside system
func (s *RoadsideStore) CreateAccount(accountID, displayName, role string) (*schema.Account, error) {
	switch role {
	case "":
		role = schema.RoleBoth
	case schema.RoleRequester, schema.RoleHelper, schema.RoleBoth:
	default:
		return nil, ErrInvalidRole
	}

	a := schema.Account{
		ID:          accountID,
		DisplayName: displayName,
		Role:        role,
		State: schema.ActivityState{
			LastActiveTime: time.Now(),
		},
	}

	if err := s.ormDB.Create(&a).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrAccountTaken
		}
		return nil, err
	}

	return &a, nil
}

// GetAccount returns an account instance of a given account id
func (s *RoadsideStore) GetAccount(accountID string) (*schema.Account, error) {
	var a schema.Account
	if err := s.ormDB.Where("id = ?", accountID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAccountGeoPosition is to update the last known location of an account
func (s *RoadsideStore) UpdateAccountGeoPosition(accountID string, latitude, longitude float64) error {
	var a schema.Account
	if err := s.ormDB.Where("id = ?", accountID).First(&a).Error; err != nil {
		return err
	}

	a.State.LastActiveTime = time.Now()
	a.State.LastLocation = &schema.Location{
		Latitude:  latitude,
		Longitude: longitude,
	}

	return s.ormDB.Save(&a).Error
}
