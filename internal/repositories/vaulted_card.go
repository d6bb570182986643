package repositories

import (
	"sync"

	"dropin/internal/models"

	"gorm.io/gorm"
)

// VaultedCardRepository persists tokenized cards for merchants.
type VaultedCardRepository interface {
	Save(card *models.VaultedCard) error
	FindByMerchant(merchantID string) ([]models.VaultedCard, error)
}

type vaultedCardRepository struct {
	db *gorm.DB
}

// NewVaultedCardRepository returns a PostgreSQL-backed repository.
func NewVaultedCardRepository(db *gorm.DB) VaultedCardRepository {
	return &vaultedCardRepository{db: db}
}

func (r *vaultedCardRepository) Save(card *models.VaultedCard) error {
	return r.db.Create(card).Error
}

func (r *vaultedCardRepository) FindByMerchant(merchantID string) ([]models.VaultedCard, error) {
	var cards []models.VaultedCard
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&cards).Error
	return cards, err
}

// MemoryVaultedCardRepository keeps vaulted cards in process memory, for
// in-memory sandbox runs and tests.
type MemoryVaultedCardRepository struct {
	mu     sync.Mutex
	nextID uint
	cards  []models.VaultedCard
}

func NewMemoryVaultedCardRepository() *MemoryVaultedCardRepository {
	return &MemoryVaultedCardRepository{}
}

func (r *MemoryVaultedCardRepository) Save(card *models.VaultedCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	card.ID = r.nextID
	r.cards = append(r.cards, *card)
	return nil
}

func (r *MemoryVaultedCardRepository) FindByMerchant(merchantID string) ([]models.VaultedCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VaultedCard
	for i := len(r.cards) - 1; i >= 0; i-- {
		if r.cards[i].MerchantID == merchantID {
			out = append(out, r.cards[i])
		}
	}
	return out, nil
}
