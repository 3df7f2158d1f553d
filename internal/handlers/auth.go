package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/config"
	"github.com/example/recyclehub/internal/models"
	"github.com/example/recyclehub/internal/utils"
)

// AuthHandler bundles dependencies for user and middleman authentication
// endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type signupRequest struct {
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Password      string `json:"password"`
	WalletAddress string `json:"walletAddress"`
}

// Signup creates a new user or middleman account. Phone numbers are unique
// within each role partition, not across them.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Name == "" || req.Role == "" || req.Password == "" || req.WalletAddress == "" {
		return fiber.NewError(fiber.StatusBadRequest, "all fields are required")
	}

	kind, ok := models.ParseAccountKind(req.Role)
	if !ok || kind == models.KindCompany {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	base := models.AccountBase{
		Name:          req.Name,
		PasswordHash:  passwordHash,
		WalletAddress: req.WalletAddress,
	}

	if kind == models.KindUser {
		var existing models.User
		if err := h.db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "phone number already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user := models.User{AccountBase: base, Phone: req.Phone}
		if err := h.db.Create(&user).Error; err != nil {
			return err
		}
		return h.respondAccount(c, fiber.StatusCreated, user.ID, models.KindUser, user.AccountBase, user.Phone)
	}

	var existing models.Middleman
	if err := h.db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "phone number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	middleman := models.Middleman{AccountBase: base, Phone: req.Phone}
	if err := h.db.Create(&middleman).Error; err != nil {
		return err
	}
	return h.respondAccount(c, fiber.StatusCreated, middleman.ID, models.KindMiddleman, middleman.AccountBase, middleman.Phone)
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates by phone, checking the user partition first and the
// middleman partition second.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone number and password are required")
	}

	var user models.User
	err := h.db.Where("phone = ?", req.Phone).First(&user).Error
	if err == nil {
		if !utils.CheckPassword(user.PasswordHash, req.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return h.respondAccount(c, fiber.StatusOK, user.ID, models.KindUser, user.AccountBase, user.Phone)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var middleman models.Middleman
	err = h.db.Where("phone = ?", req.Phone).First(&middleman).Error
	if err == nil {
		if !utils.CheckPassword(middleman.PasswordHash, req.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return h.respondAccount(c, fiber.StatusOK, middleman.ID, models.KindMiddleman, middleman.AccountBase, middleman.Phone)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return fiber.NewError(fiber.StatusNotFound, "account not found")
}

func (h *AuthHandler) respondAccount(c *fiber.Ctx, status int, id uuid.UUID, kind models.AccountKind, base models.AccountBase, phone string) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, id, string(kind), h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"account": fiber.Map{
			"id":             id,
			"name":           base.Name,
			"phone":          phone,
			"wallet_address": base.WalletAddress,
			"role":           kind,
		},
		"token": token,
	})
}
