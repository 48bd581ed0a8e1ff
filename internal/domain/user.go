package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleTenant   UserRole = "tenant"
	UserRoleLandlord UserRole = "landlord"
)

type User struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Email      string         `db:"email" json:"email"`
	Password   string         `db:"password" json:"-"`
	Phone      sql.NullString `db:"phone" json:"phone"`
	Role       UserRole       `db:"role" json:"role"`
	IsVerified bool           `db:"is_verified" json:"is_verified"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
