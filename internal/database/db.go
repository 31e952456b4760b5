package database

import (
	"log"
	"time"

	"repuestos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Repuesto{},
		&model.RefreshToken{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Seed inserts the initial repuesto rows when the table is empty, so a
// fresh database has something to list.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Repuesto{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	seed := []model.Repuesto{
		{BaseModel: model.BaseModel{IsActive: true, CreatedAt: now}, Name: "Repuesto1", Description: "Descripción del Repuesto1", Price: decimal.NewFromInt(100), StockQuantity: 10},
		{BaseModel: model.BaseModel{IsActive: true, CreatedAt: now}, Name: "Repuesto2", Description: "Descripción del Repuesto2", Price: decimal.NewFromInt(200), StockQuantity: 20},
		{BaseModel: model.BaseModel{IsActive: true, CreatedAt: now}, Name: "Repuesto3", Description: "Descripción del Repuesto3", Price: decimal.NewFromInt(300), StockQuantity: 30},
	}
	return db.Create(&seed).Error
}
