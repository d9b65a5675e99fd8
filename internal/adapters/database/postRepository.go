package database

import (
	"context"
	"errors"

	"blog/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// ListAll با limit <= 0 فقط تعداد کل را برمی‌گرداند
func (repo *PostRepositoryDatabase) ListAll(ctx context.Context, offset, limit int) ([]*post.Post, int64, error) {
	return repo.list(repo.db.WithContext(ctx).Model(&post.Post{}), offset, limit)
}

func (repo *PostRepositoryDatabase) ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*post.Post, int64, error) {
	q := repo.db.WithContext(ctx).Model(&post.Post{}).Where("author_id = ?", authorID)
	return repo.list(q, offset, limit)
}

func (repo *PostRepositoryDatabase) list(q *gorm.DB, offset, limit int) ([]*post.Post, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		return nil, total, nil
	}

	var posts []*post.Post
	if err := q.Preload("Author").
		Order("date_posted DESC").
		Order("id DESC"). // هم‌زمان‌ها باید بین صفحه‌ها ثابت بمانند
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (repo *PostRepositoryDatabase) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Insert شناسه را اگر خالی باشد خودش می‌سازد؛ رکورد User دست نمی‌خورد
func (repo *PostRepositoryDatabase) Insert(ctx context.Context, p *post.Post) (*post.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Update فقط title، content و author_id نوشته می‌شوند؛ date_posted ثابت می‌ماند
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	res := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":     p.Title,
			"content":   p.Content,
			"author_id": p.AuthorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL وقتی مقدار تغییر نکند هم 0 برمی‌گرداند
		return repo.GetByID(ctx, p.ID)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return post.ErrNotFound
	}
	return nil
}
