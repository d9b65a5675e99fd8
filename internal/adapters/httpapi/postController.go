package httpapi

import (
	"net/http"
	"strconv"

	"blog/internal/adapters/httpapi/middleware"
	postEntity "blog/internal/core/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

// postRequest فقط title و content؛ هر فیلد دیگری (مثل author) نادیده گرفته می‌شود
type postRequest struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

var postFormFields = []string{"title", "content"}

func (ctl *PostController) Home(c *gin.Context) {
	page, err := ctl.page(c, "")
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}

	res, err := ctl.pc.ListAll(c.Request.Context(), page)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Home", "posts": res.Posts, "page": res.Page})
}

func (ctl *PostController) UserPosts(c *gin.Context) {
	username := c.Param("username")

	page, err := ctl.page(c, username)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}

	res, err := ctl.pc.ListByUser(c.Request.Context(), username, page)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Posts by " + username, "posts": res.Posts, "page": res.Page})
}

func (ctl *PostController) PostDetail(c *gin.Context) {
	p, err := ctl.pc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": p.Title, "post": p})
}

func (ctl *PostController) NewPostForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": "New Post", "fields": postFormFields})
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := ctl.pc.CreatePost(c.Request.Context(), middleware.CurrentUser(c), req.Title, req.Content)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.Redirect(http.StatusFound, "/post/"+p.ID)
}

func (ctl *PostController) UpdatePostForm(c *gin.Context) {
	p, err := ctl.pc.AuthorizePost(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Update Post", "fields": postFormFields, "post": p})
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := ctl.pc.UpdatePost(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.Redirect(http.StatusFound, "/post/"+p.ID)
}

func (ctl *PostController) DeletePostConfirm(c *gin.Context) {
	p, err := ctl.pc.AuthorizePost(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Delete Post", "post": p})
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// page خواندن ?page=N یا ?page=last؛ مقدار غیرعددی NotFound است
func (ctl *PostController) page(c *gin.Context, username string) (int, error) {
	pageStr := c.DefaultQuery("page", "1")
	if pageStr == "last" {
		return ctl.pc.LastPage(c.Request.Context(), username)
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, postEntity.ErrNotFound
	}
	return page, nil
}
