package post

import (
	"time"

	"blog/internal/core/user"

	"github.com/gofrs/uuid"
)

// TitleMaxLength حداکثر طول عنوان پست
const TitleMaxLength = 100

// Post یک نوشته‌ی وبلاگ؛ نویسنده و تاریخ انتشار بعد از ساخت تغییر نمی‌کنند
type Post struct {
	ID         uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title      string    `gorm:"type:varchar(100);not null"`
	Content    string    `gorm:"type:text;not null"`
	DatePosted time.Time `gorm:"not null;index"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Author     user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
