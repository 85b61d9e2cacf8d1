package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shope/internal/models"
)

func (r *GormRepo) LoadCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var rows []cartRow
	if err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]models.CartItem, len(rows))
	for i, row := range rows {
		items[i] = models.CartItem{
			ID:       row.ProductID,
			Name:     row.Name,
			Price:    row.Price,
			ImageURI: row.ImageURI,
			Quantity: row.Quantity,
		}
	}
	return items, nil
}

// SaveCart replaces the stored snapshot of a session's cart with items.
func (r *GormRepo) SaveCart(ctx context.Context, sessionID string, items []models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&cartRow{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		rows := make([]cartRow, len(items))
		for i, it := range items {
			rows[i] = cartRow{
				SessionID: sessionID,
				ProductID: it.ID,
				Position:  i,
				Name:      it.Name,
				Price:     it.Price,
				ImageURI:  it.ImageURI,
				Quantity:  it.Quantity,
			}
		}
		return tx.Create(&rows).Error
	})
}
