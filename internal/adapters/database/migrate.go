package database

import (
	"blog/internal/core/post"
	"blog/internal/core/user"

	"gorm.io/gorm"
)

// AutoMigrate اعمال مایگریشن برای مدل‌ها
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
	)
}
