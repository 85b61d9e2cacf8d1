package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type cartRow struct {
	SessionID string  `gorm:"primaryKey;size:64"`
	ProductID string  `gorm:"primaryKey;size:128"`
	Position  int     `gorm:"not null"`
	Name      string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	ImageURI  string  `gorm:"not null"`
	Quantity  int     `gorm:"not null;default:1;check:quantity>0"`
	UpdatedAt time.Time
}

func (cartRow) TableName() string {
	return "cart_items"
}

// orderRow ids are only unique within a session, so the key is (session_id, id).
type orderRow struct {
	SessionID string    `gorm:"primaryKey;index:idx_order_session_seq;size:64"`
	ID        string    `gorm:"primaryKey;size:160"`
	Seq       int64     `gorm:"index:idx_order_session_seq;not null"`
	ProductID string    `gorm:"index;not null;size:128"`
	Name      string    `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	ImageURI  string    `gorm:"not null"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"`
	CreatedAt time.Time `gorm:"not null"`
}

func (orderRow) TableName() string {
	return "order_items"
}

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&cartRow{}, &orderRow{})
}
