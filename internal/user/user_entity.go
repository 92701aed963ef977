package user

import (
	"time"

	"github.com/shkhalid/maxerp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string      `gorm:"type:varchar(100);not null"`
	Email    string      `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password string      `gorm:"type:varchar(255);not null"`
	Role     domain.Role `gorm:"type:varchar(20);not null;default:'employee'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}
