package user

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"campus_market/internal/handlers"
	"campus_market/internal/middleware"
	"campus_market/internal/models"
	"campus_market/internal/store"
	"campus_market/internal/utils"
)

const (
	maxEmailLen    = 254
	maxPasswordLen = 256
	maxNameLen     = 80

	errBadCredentials = "invalid email or password"
)

type AuthHandler struct {
	Store    *store.Store
	Secret   string
	TokenTTL time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthHandler(s *store.Store, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Store: s, Secret: secret, TokenTTL: ttl}
}

type credentials struct {
	Email    interface{} `json:"email"`
	Password interface{} `json:"password"`
	Name     interface{} `json:"name"`
}

type sessionResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.Fail(c, http.StatusBadRequest, "email, password and name are required")
		return
	}

	email := strings.ToLower(utils.Sanitize(input.Email, maxEmailLen))
	password := utils.Sanitize(input.Password, maxPasswordLen)
	name := utils.Sanitize(input.Name, maxNameLen)
	if email == "" || password == "" || name == "" {
		handlers.Fail(c, http.StatusBadRequest, "email, password and name are required")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		handlers.ServerError(c, err, "could not hash password")
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), email, name, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		handlers.Fail(c, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		handlers.ServerError(c, err, "could not create account")
		return
	}

	token, err := utils.GenerateJWT(h.Secret, user.Public(), h.TokenTTL)
	if err != nil {
		handlers.ServerError(c, err, "could not issue token")
		return
	}

	zap.S().Infof("✅ new account %s", user.ID)
	c.JSON(http.StatusCreated, sessionResponse{Token: token, User: user.Public()})
}

// Login answers the same 401 for an unknown email and a wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	email := strings.ToLower(utils.Sanitize(input.Email, maxEmailLen))
	password := utils.Sanitize(input.Password, maxPasswordLen)
	if email == "" || password == "" {
		handlers.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.Store.UserByEmail(c.Request.Context(), email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		handlers.ServerError(c, err, "could not look up account")
		return
	}
	if err != nil {
		// spend the same hashing time as a real check
		_, _ = utils.VerifyPassword(password, h.dummy())
		handlers.Fail(c, http.StatusUnauthorized, errBadCredentials)
		return
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		zap.S().Warnf("⚠️ unreadable password hash for user %s: %v", user.ID, err)
	}
	if !ok {
		handlers.Fail(c, http.StatusUnauthorized, errBadCredentials)
		return
	}

	token, err := utils.GenerateJWT(h.Secret, user.Public(), h.TokenTTL)
	if err != nil {
		handlers.ServerError(c, err, "could not issue token")
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Token: token, User: user.Public()})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

func (h *AuthHandler) dummy() string {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = utils.HashPassword("campus-market-dummy")
	})
	return h.dummyHash
}
