package main

import (
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Name:        "机械键盘",
			PriceAmount: money("399.00"),
			Category:    "electronics",
			Image:       "/uploads/keyboard.jpg",
			IsActive:    true,
		},
		{
			Name:          "无线鼠标",
			PriceAmount:   money("129.00"),
			OriginalPrice: moneyPtr("169.00"),
			Category:      "electronics",
			Image:         "/uploads/mouse.jpg",
			IsActive:      true,
		},
		{
			Name:        "降噪耳机",
			PriceAmount: money("899.00"),
			Category:    "electronics",
			Image:       "/uploads/headphones.jpg",
			IsActive:    true,
		},
		{
			Name:          "保温杯",
			PriceAmount:   money("89.90"),
			OriginalPrice: moneyPtr("119.00"),
			Category:      "lifestyle",
			Image:         "/uploads/bottle.jpg",
			IsActive:      true,
		},
		{
			Name:        "笔记本支架",
			PriceAmount: money("159.00"),
			Category:    "accessories",
			Image:       "/uploads/stand.jpg",
			IsActive:    true,
		},
		{
			Name:        "绝版手办",
			PriceAmount: money("1299.00"),
			Category:    "lifestyle",
			Image:       "/uploads/figure.jpg",
			IsActive:    false,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			} else {
				stdLog.Printf("Created product: %s", p.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Name)
		}
	}

	stdLog.Println("Seed finished")
}

func money(value string) models.Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}

func moneyPtr(value string) *models.Money {
	m := money(value)
	return &m
}
