package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// PickupNotification contains new pickup request data for Telegram notification.
type PickupNotification struct {
	ItemID        string
	UserName      string
	UserPhone     string
	Material      string
	Quantity      float64
	TotalValue    float64
	ScheduledDate string
	Lat           float64
	Long          float64
}

// NotifyNewPickup notifies the admin chat about a freshly submitted pickup request.
func (s *TelegramService) NotifyNewPickup(n PickupNotification) error {
	text := fmt.Sprintf(
		"♻️ <b>New pickup request</b>\n\n"+
			"Item: <code>%s</code>\n"+
			"Client: %s (%s)\n"+
			"Material: %s, %.2f kg\n"+
			"Value: $%.2f\n"+
			"Scheduled: %s\n"+
			"Location: %.4f, %.4f",
		n.ItemID, n.UserName, n.UserPhone,
		n.Material, n.Quantity, n.TotalValue,
		n.ScheduledDate, n.Lat, n.Long,
	)
	return s.SendToAdmin(text)
}

// AssignmentNotification contains assignment data for Telegram notification.
type AssignmentNotification struct {
	ItemID         string
	Material       string
	Quantity       float64
	MiddlemanName  string
	MiddlemanPhone string
}

// NotifyAssignment notifies the admin chat that a partner claimed an item.
func (s *TelegramService) NotifyAssignment(n AssignmentNotification) error {
	text := fmt.Sprintf(
		"🚚 <b>Item assigned</b>\n\n"+
			"Item: <code>%s</code>\n"+
			"Material: %s, %.2f kg\n"+
			"Partner: %s (%s)",
		n.ItemID, n.Material, n.Quantity,
		n.MiddlemanName, n.MiddlemanPhone,
	)
	return s.SendToAdmin(text)
}
