package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shope/internal/models"
)

// AppendOrders stores items in placement order, oldest first.
func (r *GormRepo) AppendOrders(ctx context.Context, sessionID string, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendOrders(tx, sessionID, items)
	})
}

// CheckoutOrders appends items and empties the session's stored cart in one
// transaction.
func (r *GormRepo) CheckoutOrders(ctx context.Context, sessionID string, items []models.OrderItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := appendOrders(tx, sessionID, items); err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&cartRow{}).Error
	})
}

func appendOrders(tx *gorm.DB, sessionID string, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var last int64
	if err := tx.Model(&orderRow{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&last).Error; err != nil {
		return err
	}

	rows := make([]orderRow, len(items))
	for i, it := range items {
		rows[i] = orderRow{
			ID:        it.ID,
			SessionID: sessionID,
			Seq:       last + int64(i) + 1,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			ImageURI:  it.ImageURI,
			Quantity:  it.Quantity,
			CreatedAt: it.CreatedAt,
		}
	}
	return tx.Create(&rows).Error
}

// ListOrders returns a session's order log newest first.
func (r *GormRepo) ListOrders(ctx context.Context, sessionID string) ([]models.OrderItem, error) {
	var rows []orderRow
	if err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, len(rows))
	for i, row := range rows {
		items[i] = models.OrderItem{
			ID:        row.ID,
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			ImageURI:  row.ImageURI,
			Quantity:  row.Quantity,
			CreatedAt: row.CreatedAt,
		}
	}
	return items, nil
}
