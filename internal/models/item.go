package models

import (
	"time"

	"github.com/google/uuid"
)

// Material is the recyclable material kind of a pickup request.
type Material string

const (
	MaterialPaper       Material = "paper"
	MaterialElectronics Material = "electronics"
	MaterialGlass       Material = "glass"
	MaterialFurniture   Material = "furniture"
	MaterialPlastic     Material = "plastic"
)

// materialPrices maps each material kind to its unit price per kg.
var materialPrices = map[Material]float64{
	MaterialPaper:       0.5,
	MaterialElectronics: 5.0,
	MaterialGlass:       0.3,
	MaterialFurniture:   2.0,
	MaterialPlastic:     0.8,
}

// ParseMaterial validates a material string from a request body.
func ParseMaterial(s string) (Material, bool) {
	m := Material(s)
	_, ok := materialPrices[m]
	return m, ok
}

// UnitPrice returns the price per kg for the material, 0 for unknown kinds.
func (m Material) UnitPrice() float64 {
	return materialPrices[m]
}

// ItemStatus is the lifecycle state of a pickup request.
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "Pending"
	ItemStatusAssigned ItemStatus = "Assigned"
	ItemStatusVerified ItemStatus = "Verified"
)

// Item is a recyclable-material pickup request. It starts Pending, becomes
// Assigned when exactly one middleman claims it, and Verified when a company
// confirms the completed pickup. No transition goes backward.
type Item struct {
	BaseModel
	UserID              uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	User                *User      `json:"user,omitempty"`
	Material            Material   `json:"type"`
	Quantity            float64    `json:"quantity"`
	ScheduledDate       time.Time  `json:"scheduled_date"`
	Lat                 float64    `json:"lat"`
	Long                float64    `json:"long"`
	Status              ItemStatus `gorm:"index" json:"status"`
	AssignedMiddlemanID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_middleman_id"`
	VerifiedCompanyID   *uuid.UUID `gorm:"type:uuid" json:"verified_company_id"`
}

// TotalValue derives the item's worth from the current price table. It is
// computed on read rather than stored, so price changes do not rewrite
// history unless a caller recomputes explicitly.
func (i Item) TotalValue() float64 {
	return i.Quantity * i.Material.UnitPrice()
}
