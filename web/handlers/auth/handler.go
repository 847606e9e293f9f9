// Package auth exposes registration, login and the current-user lookup.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/security"
	"interntrack.com/interntrack/web/common"
	"interntrack.com/interntrack/web/middlewares"
)

const bcryptCost = 12

type Endpoint struct {
	users     store.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func Register(public, protected *gin.RouterGroup, users store.UserStore, jwtSecret []byte, tokenTTL time.Duration) {
	endpoint := &Endpoint{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
	public.POST("/register", endpoint.SignUp)
	public.POST("/login", endpoint.Login)
	protected.GET("/me", endpoint.Me)
}

type SignUpDTO struct {
	Name       string  `json:"name" binding:"required,min=2,max=120"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Department *string `json:"department,omitempty"`
}

func (ep *Endpoint) SignUp(c *gin.Context) {
	var dto SignUpDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	now := time.Now()
	user := &model.User{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		Email:      dto.Email,
		Password:   string(hash),
		Role:       model.RoleIntern,
		Department: dto.Department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := ep.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, common.NewErrorResponse("email already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	token, err := security.CreateUserToken(user, ep.jwtSecret, ep.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{
		"token": token,
		"user":  user,
	}))
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ep *Endpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user, err := ep.users.FindByEmail(c.Request.Context(), dto.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid credentials"))
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("account is deactivated"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid credentials"))
		return
	}

	token, err := security.CreateUserToken(user, ep.jwtSecret, ep.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"token": token,
		"user":  user,
	}))
}

func (ep *Endpoint) Me(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(middlewares.CurrentUser(c)))
}
