package postapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	postEntity "blog/internal/core/post"
	userEntity "blog/internal/core/user"
	postPort "blog/internal/ports/post"
	userPort "blog/internal/ports/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// PageSize تعداد پست در هر صفحه
const PageSize = 5

type PostService struct {
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository // برای پیدا کردن نویسنده با username
	Logger         *zap.Logger

	validate *validator.Validate
	now      func() time.Time
}

func NewPostService(postRepo postPort.PostRepository, userRepo userPort.UserRepository, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: postRepo,
		UserRepository: userRepo,
		Logger:         logger,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// قوانین فیلدهای فرم؛ author فیلد فرم نیست
var (
	titleRule   = "required,max=" + strconv.Itoa(postEntity.TitleMaxLength)
	contentRule = "required"
)

// ListAll همه‌ی پست‌ها، جدیدترین اول
func (s *PostService) ListAll(ctx context.Context, page int) (*postPort.PostPageDTO, error) {
	return s.paginate(page, func(offset, limit int) ([]*postEntity.Post, int64, error) {
		return s.PostRepository.ListAll(ctx, offset, limit)
	})
}

// ListByUser پست‌های یک کاربر، جدیدترین اول
func (s *PostService) ListByUser(ctx context.Context, username string, page int) (*postPort.PostPageDTO, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	return s.paginate(page, func(offset, limit int) ([]*postEntity.Post, int64, error) {
		return s.PostRepository.ListByAuthor(ctx, author.ID, offset, limit)
	})
}

// LastPage شماره‌ی آخرین صفحه برای ?page=last
func (s *PostService) LastPage(ctx context.Context, username string) (int, error) {
	var total int64
	var err error
	if username == "" {
		_, total, err = s.PostRepository.ListAll(ctx, 0, 0)
	} else {
		author, ferr := s.UserRepository.FindByUsername(ctx, username)
		if ferr != nil {
			return 0, fmt.Errorf("find user %q: %w", username, ferr)
		}
		_, total, err = s.PostRepository.ListByAuthor(ctx, author.ID, 0, 0)
	}
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return numPages(total), nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

// CreatePost نویسنده همیشه کاربر فعلی است و هیچ‌وقت از ورودی گرفته نمی‌شود
func (s *PostService) CreatePost(ctx context.Context, acting *userEntity.User, title, content string) (*postPort.PostDTO, error) {
	if acting == nil {
		return nil, postEntity.ErrUnauthenticated
	}

	title, content, err := s.validateForm(title, content)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		Title:      title,
		Content:    content,
		DatePosted: s.now(),
		AuthorID:   acting.ID,
		Author:     *acting,
	}

	created, err := s.PostRepository.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.Logger.Info("Post created", zap.String("postID", created.ID.String()), zap.String("author", acting.Username))
	return postPort.ToDTO(created), nil
}

func (s *PostService) UpdatePost(ctx context.Context, acting *userEntity.User, id, title, content string) (*postPort.PostDTO, error) {
	p, err := s.authorize(ctx, acting, id)
	if err != nil {
		return nil, err
	}

	title, content, err = s.validateForm(title, content)
	if err != nil {
		return nil, err
	}

	// نویسنده دوباره روی کاربر فعلی تنظیم می‌شود (بعد از authorize همان مقدار قبلی است)
	p.AuthorID = acting.ID
	p.Author = *acting
	p.Title = title
	p.Content = content

	updated, err := s.PostRepository.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.Logger.Info("Post updated", zap.String("postID", updated.ID.String()), zap.String("author", acting.Username))
	return postPort.ToDTO(updated), nil
}

func (s *PostService) DeletePost(ctx context.Context, acting *userEntity.User, id string) error {
	p, err := s.authorize(ctx, acting, id)
	if err != nil {
		return err
	}

	if err := s.PostRepository.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.Logger.Info("Post deleted", zap.String("postID", p.ID.String()), zap.String("author", acting.Username))
	return nil
}

// AuthorizePost برای فرم‌های GET ویرایش و حذف؛ همان گیت‌های UpdatePost/DeletePost
func (s *PostService) AuthorizePost(ctx context.Context, acting *userEntity.User, id string) (*postPort.PostDTO, error) {
	p, err := s.authorize(ctx, acting, id)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

// authorize ترتیب بررسی: احراز هویت، وجود پست، نویسنده بودن
func (s *PostService) authorize(ctx context.Context, acting *userEntity.User, id string) (*postEntity.Post, error) {
	if acting == nil {
		return nil, postEntity.ErrUnauthenticated
	}

	p, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !postEntity.IsAuthor(acting, p) {
		s.Logger.Warn("Rejected non-author", zap.String("postID", id), zap.String("user", acting.Username))
		return nil, postEntity.ErrForbidden
	}
	return p, nil
}

func (s *PostService) getPost(ctx context.Context, id string) (*postEntity.Post, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return nil, postEntity.ErrNotFound
	}
	return s.PostRepository.GetByID(ctx, pid)
}

func (s *PostService) validateForm(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	fields := []struct {
		name, value, rule string
	}{
		{"title", title, titleRule},
		{"content", content, contentRule},
	}

	valErr := &postEntity.ValidationError{Fields: map[string]string{}}
	for _, f := range fields {
		err := s.validate.Var(f.value, f.rule)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return "", "", err
		}
		valErr.Fields[f.name] = fieldMessage(fieldErrs[0])
	}

	if len(valErr.Fields) > 0 {
		return "", "", valErr
	}
	return title, content, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

// paginate صفحه ۱ حتی بدون پست وجود دارد؛ صفحه‌ی خارج از محدوده NotFound است
func (s *PostService) paginate(page int, fetch func(offset, limit int) ([]*postEntity.Post, int64, error)) (*postPort.PostPageDTO, error) {
	if page < 1 {
		return nil, postEntity.ErrNotFound
	}

	posts, total, err := fetch((page-1)*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	pages := numPages(total)
	if page > pages {
		return nil, postEntity.ErrNotFound
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.ToDTO(p))
	}

	return &postPort.PostPageDTO{
		Posts: dtos,
		Page: postPort.PageDTO{
			Number:      page,
			PageSize:    PageSize,
			TotalCount:  total,
			TotalPages:  pages,
			HasNext:     page < pages,
			HasPrevious: page > 1,
		},
	}, nil
}

func numPages(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + PageSize - 1) / PageSize)
}
