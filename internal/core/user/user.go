package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// User صاحب پست‌ها؛ هر کاربر می‌تواند چند پست داشته باشد
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(254)"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
