package models

import "time"

// VaultedCard is a tokenized card stored on behalf of a merchant's customer.
// Only the token and display details are persisted, never card data.
type VaultedCard struct {
	ID         uint   `gorm:"primarykey"`
	MerchantID string `gorm:"not null;index"`
	CustomerID string `gorm:"index"`
	Token      string `gorm:"not null;uniqueIndex"`
	CardType   string `gorm:"not null"`
	LastFour   string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
