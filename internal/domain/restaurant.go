package domain

import "time"

// Messaging provider keys. Picked per restaurant at configuration time.
const (
	ProviderMeta     = "meta"
	ProviderChatAPI  = "chatapi"
	ProviderRestForm = "restform"
)

type Restaurant struct {
	ID   string `gorm:"primaryKey"`
	Name string
	// The restaurant's own WhatsApp number, normalized. Inbound manager
	// button presses arrive from this number, not a personal one.
	WhatsappPhone string `gorm:"uniqueIndex"`
	Provider      string // meta|chatapi|restform
	ManagerLang   string `gorm:"default:ru"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Table struct {
	ID           string `gorm:"primaryKey"`
	RestaurantID string `gorm:"index"`
	Number       int
	Capacity     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
