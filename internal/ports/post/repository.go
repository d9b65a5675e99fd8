package post

import (
	"context"
	"time"

	"blog/internal/core/post"
	userPort "blog/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
// همه‌ی لیست‌ها بر اساس date_posted نزولی مرتب می‌شوند
type PostRepository interface {
	ListAll(ctx context.Context, offset, limit int) ([]*post.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*post.Post, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Insert(ctx context.Context, p *post.Post) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) (*post.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DTOها برای UseCase
type PostDTO struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	DatePosted time.Time         `json:"date_posted"`
	AuthorID   string            `json:"author_id"`
	Author     *userPort.UserDTO `json:"author,omitempty"`
}

type PageDTO struct {
	Number      int   `json:"number"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

type PostPageDTO struct {
	Posts []*PostDTO `json:"posts"`
	Page  PageDTO    `json:"page"`
}

// ToDTO تبدیل entity به DTO؛ اگر Author بارگذاری نشده باشد فقط author_id برمی‌گردد
func ToDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:         p.ID.String(),
		Title:      p.Title,
		Content:    p.Content,
		DatePosted: p.DatePosted,
		AuthorID:   p.AuthorID.String(),
	}
	if p.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{
			ID:       p.Author.ID.String(),
			Username: p.Author.Username,
			Email:    p.Author.Email,
		}
	}
	return dto
}
