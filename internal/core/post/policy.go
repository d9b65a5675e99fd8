package post

import "blog/internal/core/user"

// IsAuthor آیا u نویسنده‌ی p است؛ مقایسه فقط با کلید اصلی کاربر
func IsAuthor(u *user.User, p *Post) bool {
	if u == nil || p == nil {
		return false
	}
	return u.ID == p.AuthorID
}
