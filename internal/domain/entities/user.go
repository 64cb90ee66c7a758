package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is one directory entry owners and senders resolve against
type User struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username   string         `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName   string         `json:"full_name" gorm:"type:varchar(255);not null"`
	Email      string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Department string         `json:"department" gorm:"type:varchar(255);default:'Unknown'"`
	EmployeeID string         `json:"employee_id" gorm:"type:varchar(64);index"`
	Aliases    datatypes.JSON `json:"aliases" gorm:"type:jsonb;default:'[]'"`
	IsActive   bool           `json:"is_active" gorm:"default:true;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the GORM table name
func (User) TableName() string {
	return "users"
}

// AliasList decodes the configured alias tokens
func (u *User) AliasList() []string {
	if len(u.Aliases) == 0 {
		return nil
	}
	var aliases []string
	if err := json.Unmarshal(u.Aliases, &aliases); err != nil {
		return nil
	}
	return aliases
}

// HasAlias reports whether the token matches one of the user's aliases
func (u *User) HasAlias(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, a := range u.AliasList() {
		if strings.ToLower(a) == t {
			return true
		}
	}
	return false
}
