package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-platform/internal/auth"
	"blog-platform/internal/domain"
	"blog-platform/internal/repository"
	"blog-platform/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	posts  service.PostService
	tokens *auth.TokenService
}

func NewHandler(users service.UserService, posts service.PostService, tokens *auth.TokenService) *Handler {
	return &Handler{
		users:  users,
		posts:  posts,
		tokens: tokens,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/users/", h.register)
	router.POST("/token", h.login)
	router.GET("/users/me", h.requireAuth(), h.currentUserInfo)
	router.GET("/users/", h.requireAuth(), h.listUsers)

	router.POST("/posts/", h.requireAuth(), h.createPost)
	router.GET("/posts/", h.listPosts)
	router.GET("/posts/:id", h.getPost)
	router.PUT("/posts/:id", h.requireAuth(), h.updatePost)
	router.DELETE("/posts/:id", h.requireAuth(), h.deletePost)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) currentUserInfo(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(currentUser(c)))
}

func (h *Handler) listUsers(c *gin.Context) {
	if !currentUser(c).IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
		return
	}

	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := h.posts.Create(c.Request.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, postToResponse(*post, user.Email))
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i], h.authorEmail(c, posts[i].OwnerID))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, postToResponse(*post, h.authorEmail(c, post.OwnerID)))
}

func (h *Handler) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), user.ID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, repository.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to update this post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, postToResponse(*post, h.authorEmail(c, post.OwnerID)))
}

func (h *Handler) deletePost(c *gin.Context) {
	user := currentUser(c)
	if err := h.posts.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, repository.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// authorEmail resolves a post owner's email at response time, so the
// displayed email always reflects the owner's current account state.
func (h *Handler) authorEmail(c *gin.Context, ownerID string) string {
	user, err := h.users.GetByID(c.Request.Context(), ownerID)
	if err != nil {
		return ""
	}
	return user.Email
}

type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PostResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	PublicationDate string `json:"publication_date"`
	OwnerID         string `json:"owner_id"`
	AuthorEmail     string `json:"author_email"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

func postToResponse(post domain.Post, authorEmail string) PostResponse {
	return PostResponse{
		ID:              post.ID,
		Title:           post.Title,
		Content:         post.Content,
		PublicationDate: post.PublishedAt.Format(time.RFC3339),
		OwnerID:         post.OwnerID,
		AuthorEmail:     authorEmail,
	}
}
