package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/models"
	"github.com/example/recyclehub/internal/services"
	"github.com/example/recyclehub/internal/utils"
)

// ItemHandler manages pickup-request endpoints for clients.
type ItemHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(db *gorm.DB, telegram *services.TelegramService) *ItemHandler {
	return &ItemHandler{db: db, telegram: telegram}
}

type addItemRequest struct {
	UserID        string  `json:"userId"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	ScheduledDate string  `json:"scheduledDate"`
	Lat           float64 `json:"lat"`
	Long          float64 `json:"long"`
}

// AddItem creates a pickup request in Pending status for an existing user.
func (h *ItemHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	material, ok := models.ParseMaterial(req.Type)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid material type")
	}

	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be a positive number")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown user")
		}
		return err
	}

	scheduledDate, err := parseScheduledDate(req.ScheduledDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scheduled date")
	}

	item := models.Item{
		UserID:        user.ID,
		Material:      material,
		Quantity:      req.Quantity,
		ScheduledDate: scheduledDate,
		Lat:           req.Lat,
		Long:          req.Long,
		Status:        models.ItemStatusPending,
	}

	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	if h.telegram != nil {
		go h.notifyPickup(item, user)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "item added successfully",
		"item":    itemResponse(item),
	})
}

// ListUserItems returns all items owned by a user, newest first. Pagination
// applies only when the client asks for it; the dashboard expects the full
// list.
func (h *ItemHandler) ListUserItems(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	query := h.db.Where("user_id = ?", userID).Order("created_at desc")
	if c.Query("page") != "" || c.Query("limit") != "" {
		pg := utils.ParsePagination(c)
		query = query.Limit(pg.Limit).Offset(pg.Offset)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   itemResponses(items),
	})
}

func (h *ItemHandler) notifyPickup(item models.Item, user models.User) {
	err := h.telegram.NotifyNewPickup(services.PickupNotification{
		ItemID:        item.ID.String(),
		UserName:      user.Name,
		UserPhone:     user.Phone,
		Material:      string(item.Material),
		Quantity:      item.Quantity,
		TotalValue:    item.TotalValue(),
		ScheduledDate: item.ScheduledDate.Format("2006-01-02"),
		Lat:           item.Lat,
		Long:          item.Long,
	})
	if err != nil {
		log.Printf("[Item] Telegram notification failed for item %s: %v", item.ID, err)
	}
}

// parseScheduledDate accepts the date-only format the client form sends,
// falling back to RFC 3339.
func parseScheduledDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// itemResponse renders an item with its derived pricing fields.
func itemResponse(item models.Item) fiber.Map {
	return fiber.Map{
		"id":                    item.ID,
		"user_id":               item.UserID,
		"type":                  item.Material,
		"quantity":              item.Quantity,
		"unit_price":            item.Material.UnitPrice(),
		"total_value":           item.TotalValue(),
		"scheduled_date":        item.ScheduledDate,
		"lat":                   item.Lat,
		"long":                  item.Long,
		"status":                item.Status,
		"assigned_middleman_id": item.AssignedMiddlemanID,
		"verified_company_id":   item.VerifiedCompanyID,
		"created_at":            item.CreatedAt,
	}
}

func itemResponses(items []models.Item) []fiber.Map {
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse(item))
	}
	return out
}
