package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	RoleRequester = "requester"
	RoleHelper    = "helper"
	RoleBoth      = "both"
)

// CanRequest reports whether the account may open requests. An empty role
// counts as both.
func (a *Account) CanRequest() bool {
	return a.Role != RoleHelper
}

// CanHelp reports whether the account may offer help
func (a *Account) CanHelp() bool {
	return a.Role != RoleRequester
}

type ActivityState struct {
	LastActiveTime time.Time `json:"last_active_time"`
	LastLocation   *Location `json:"location"`
}

func (u ActivityState) Value() (driver.Value, error) {
	return json.Marshal(u)
}

func (u *ActivityState) Scan(src interface{}) error {
	source, ok := src.([]byte)
	if !ok {
		return errors.New("Type assertion .([]byte) failed.")
	}
	return json.Unmarshal(source, u)
}

// Account - a registered user. The id is the subject of the bearer token.
// Rating fields are maintained by the rating service.
type Account struct {
	ID            string        `json:"id" gorm:"primary_key"`
	DisplayName   string        `json:"display_name"`
	Role          string        `json:"role" sql:"default:'both'"`
	RatingAverage float64       `json:"rating_average"`
	RatingCount   int           `json:"rating_count"`
	State         ActivityState `json:"state" gorm:"type:jsonb;not null;default '{}'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
