package user

import "errors"

var (
	// ErrNotFound هیچ کاربری با این مشخصات پیدا نشد
	ErrNotFound = errors.New("user not found")

	ErrUsernameTaken = errors.New("username already taken")

	// ErrUsernameRequired یوزرنیم بعد از حذف فاصله‌ها خالی است
	ErrUsernameRequired = errors.New("username is required")

	// ErrInvalidCredentials برای یوزرنیم ناموجود و پسورد اشتباه یکسان است
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken توکن خراب، منقضی یا باطل‌شده
	ErrInvalidToken = errors.New("invalid token")
)
