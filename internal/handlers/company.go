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

// CompanyHandler manages recycling-company registration, login and item
// verification endpoints.
type CompanyHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(db *gorm.DB, cfg *config.Config) *CompanyHandler {
	return &CompanyHandler{db: db, cfg: cfg}
}

type companyLocationRequest struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Long    float64 `json:"long"`
}

type companyRegisterRequest struct {
	WalletAddress string                 `json:"walletAddress"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Password      string                 `json:"password"`
	CompanyType   string                 `json:"companyType"`
	Location      companyLocationRequest `json:"location"`
}

// Register creates a new company account. Email and wallet address are unique
// within the company partition.
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var req companyRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.WalletAddress == "" || req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "all fields are required")
	}

	var existing models.Company
	err := h.db.Where("email = ? OR wallet_address = ?", req.Email, req.WalletAddress).
		First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "company already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	company := models.Company{
		AccountBase: models.AccountBase{
			Name:          req.Name,
			PasswordHash:  passwordHash,
			WalletAddress: req.WalletAddress,
		},
		Phone:       req.Phone,
		Email:       req.Email,
		CompanyType: req.CompanyType,
		Address:     req.Location.Address,
		City:        req.Location.City,
		Country:     req.Location.Country,
		Lat:         req.Location.Lat,
		Long:        req.Location.Long,
	}

	if err := h.db.Create(&company).Error; err != nil {
		return err
	}

	return h.respondCompany(c, fiber.StatusCreated, company)
}

type companyLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a company by email.
func (h *CompanyHandler) Login(c *fiber.Ctx) error {
	var req companyLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	var company models.Company
	if err := h.db.Where("email = ?", req.Email).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "company not found")
		}
		return err
	}

	if !utils.CheckPassword(company.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	return h.respondCompany(c, fiber.StatusOK, company)
}

type verifyItemRequest struct {
	CompanyID string `json:"companyId"`
	ItemID    string `json:"itemId"`
}

// VerifyItem confirms a completed pickup, moving the item from Assigned to
// Verified. Verification of an item that is not currently Assigned is
// rejected, including a second verification of the same item.
func (h *CompanyHandler) VerifyItem(c *fiber.Ctx) error {
	var req verifyItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var company models.Company
	if err := h.db.First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "company not found")
		}
		return err
	}

	result := h.db.Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, models.ItemStatusAssigned).
		Updates(map[string]interface{}{
			"status":              models.ItemStatusVerified,
			"verified_company_id": companyID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var item models.Item
		if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "item not found")
			}
			return err
		}
		return fiber.NewError(fiber.StatusConflict, "item is not assigned")
	}

	var item models.Item
	if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "item verified successfully",
		"item":    itemResponse(item),
	})
}

// ListAssignedItems returns items awaiting verification.
func (h *CompanyHandler) ListAssignedItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := h.db.Where("status = ?", models.ItemStatusAssigned).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   itemResponses(items),
	})
}

func (h *CompanyHandler) respondCompany(c *fiber.Ctx, status int, company models.Company) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, company.ID, string(models.KindCompany), h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"account": fiber.Map{
			"id":             company.ID,
			"name":           company.Name,
			"email":          company.Email,
			"phone":          company.Phone,
			"wallet_address": company.WalletAddress,
			"company_type":   company.CompanyType,
			"city":           company.City,
			"country":        company.Country,
			"role":           models.KindCompany,
		},
		"token": token,
	})
}
