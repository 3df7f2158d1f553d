package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/models"
	"github.com/example/recyclehub/internal/services"
)

// MiddlemanHandler manages job browsing and assignment endpoints for delivery
// partners.
type MiddlemanHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewMiddlemanHandler constructs MiddlemanHandler.
func NewMiddlemanHandler(db *gorm.DB, telegram *services.TelegramService) *MiddlemanHandler {
	return &MiddlemanHandler{db: db, telegram: telegram}
}

// AvailableItems returns all Pending items grouped by owning user. The list
// is a point-in-time snapshot: an item may be claimed by someone else between
// listing and assigning, which AssignItem reports as a conflict.
func (h *MiddlemanHandler) AvailableItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := h.db.Where("status = ?", models.ItemStatusPending).
		Preload("User").
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	groups := make([]fiber.Map, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range items {
		pos, ok := index[item.UserID]
		if !ok {
			userName := ""
			walletAddress := ""
			if item.User != nil {
				userName = item.User.Name
				walletAddress = item.User.WalletAddress
			}
			groups = append(groups, fiber.Map{
				"userId":        item.UserID,
				"userName":      userName,
				"walletAddress": walletAddress,
				"items":         []fiber.Map{},
			})
			pos = len(groups) - 1
			index[item.UserID] = pos
		}
		groups[pos]["items"] = append(groups[pos]["items"].([]fiber.Map), itemResponse(item))
	}

	return c.JSON(groups)
}

type assignItemRequest struct {
	MiddlemanID string `json:"middlemanId"`
	ItemID      string `json:"itemId"`
}

// AssignItem claims a Pending item for a middleman. The status check and the
// update run as a single conditional UPDATE, so two racing claims on the same
// item produce exactly one success.
func (h *MiddlemanHandler) AssignItem(c *fiber.Ctx) error {
	var req assignItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	middlemanID, err := uuid.Parse(req.MiddlemanID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid middleman id")
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var middleman models.Middleman
	if err := h.db.First(&middleman, "id = ?", middlemanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "middleman not found")
		}
		return err
	}

	result := h.db.Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, models.ItemStatusPending).
		Updates(map[string]interface{}{
			"status":                models.ItemStatusAssigned,
			"assigned_middleman_id": middlemanID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// The conditional update matched nothing: either the item does not
		// exist or another middleman already claimed it.
		var item models.Item
		if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "item not found")
			}
			return err
		}
		return fiber.NewError(fiber.StatusConflict, "item already assigned")
	}

	var item models.Item
	if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
		return err
	}

	if h.telegram != nil {
		go h.notifyAssignment(item, middleman)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "item assigned successfully",
		"item":    itemResponse(item),
	})
}

// ListMiddlemanItems returns items currently claimed by a middleman.
func (h *MiddlemanHandler) ListMiddlemanItems(c *fiber.Ctx) error {
	middlemanID, err := uuid.Parse(c.Params("middlemanId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid middleman id")
	}

	var items []models.Item
	if err := h.db.Where("assigned_middleman_id = ?", middlemanID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   itemResponses(items),
	})
}

func (h *MiddlemanHandler) notifyAssignment(item models.Item, middleman models.Middleman) {
	err := h.telegram.NotifyAssignment(services.AssignmentNotification{
		ItemID:         item.ID.String(),
		Material:       string(item.Material),
		Quantity:       item.Quantity,
		MiddlemanName:  middleman.Name,
		MiddlemanPhone: middleman.Phone,
	})
	if err != nil {
		log.Printf("[Middleman] Telegram notification failed for item %s: %v", item.ID, err)
	}
}
