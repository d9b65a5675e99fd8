package httpapi

import (
	"context"

	"blog/internal/adapters/httpapi/middleware"
	userEntity "blog/internal/core/user"
	postPort "blog/internal/ports/post"
	userPort "blog/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error)
	LogoutUser(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*userEntity.User, error)
}

type PostUseCase interface {
	ListAll(ctx context.Context, page int) (*postPort.PostPageDTO, error)
	ListByUser(ctx context.Context, username string, page int) (*postPort.PostPageDTO, error)
	LastPage(ctx context.Context, username string) (int, error)
	GetByID(ctx context.Context, id string) (*postPort.PostDTO, error)
	AuthorizePost(ctx context.Context, acting *userEntity.User, id string) (*postPort.PostDTO, error)
	CreatePost(ctx context.Context, acting *userEntity.User, title, content string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, acting *userEntity.User, id, title, content string) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, acting *userEntity.User, id string) error
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(userUC UserUseCase, postUC PostUseCase, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	r.Use(middleware.Authenticate(userUC, logger))

	uc := NewUserController(userUC, logger)
	pc := NewPostController(postUC, logger)
	requireLogin := middleware.RequireLogin()

	// صفحات عمومی
	r.GET("/", pc.Home)
	r.GET("/about", About)
	r.GET("/user/:username", pc.UserPosts)
	r.GET("/post/:id", pc.PostDetail)

	// مسیرهای ثبت‌نام و ورود بدون گیت
	r.GET(middleware.LoginPath, uc.LoginForm)
	r.POST(middleware.LoginPath, uc.LoginUser)
	r.POST("/register", uc.RegisterUser)
	r.POST("/logout", requireLogin, uc.LogoutUser)

	// ساخت، ویرایش و حذف پست فقط برای کاربر واردشده
	r.GET("/post/new", requireLogin, pc.NewPostForm)
	r.POST("/post/new", requireLogin, pc.CreatePost)
	r.GET("/post/:id/update", requireLogin, pc.UpdatePostForm)
	r.POST("/post/:id/update", requireLogin, pc.UpdatePost)
	r.GET("/post/:id/delete", requireLogin, pc.DeletePostConfirm)
	r.POST("/post/:id/delete", requireLogin, pc.DeletePost)

	return r
}
