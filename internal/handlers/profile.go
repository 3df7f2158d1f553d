package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/middleware"
	"github.com/example/recyclehub/internal/models"
)

// ProfileHandler resolves bearer tokens back to their accounts.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Me returns the authenticated account, looked up in the partition the
// token's role claim names.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	accountID, role, ok := middleware.GetCurrentAccount(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	kind, valid := models.ParseAccountKind(role)
	if !valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token role")
	}

	switch kind {
	case models.KindUser:
		var user models.User
		if err := h.db.First(&user, "id = ?", accountID).Error; err != nil {
			return profileLookupError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"account": fiber.Map{
				"id":             user.ID,
				"name":           user.Name,
				"phone":          user.Phone,
				"wallet_address": user.WalletAddress,
				"role":           kind,
			},
		})

	case models.KindMiddleman:
		var middleman models.Middleman
		if err := h.db.First(&middleman, "id = ?", accountID).Error; err != nil {
			return profileLookupError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"account": fiber.Map{
				"id":             middleman.ID,
				"name":           middleman.Name,
				"phone":          middleman.Phone,
				"wallet_address": middleman.WalletAddress,
				"role":           kind,
			},
		})

	default:
		var company models.Company
		if err := h.db.First(&company, "id = ?", accountID).Error; err != nil {
			return profileLookupError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"account": fiber.Map{
				"id":             company.ID,
				"name":           company.Name,
				"email":          company.Email,
				"phone":          company.Phone,
				"wallet_address": company.WalletAddress,
				"company_type":   company.CompanyType,
				"role":           kind,
			},
		})
	}
}

func profileLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	return err
}
