package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role     Role              `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Services []Service         `gorm:"foreignKey:ProviderID" json:"services,omitempty"`
	Schedule *ProviderSchedule `gorm:"foreignKey:ProviderID" json:"schedule,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the primary key so inserts work on databases without a
// server-side uuid generator.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

// IsProvider reports whether the user holds the provider role.
func (u *User) IsProvider() bool {
	return u.RoleID == RoleIDProvider
}
