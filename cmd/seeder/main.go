package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
)

const dsnFlag = "dsn"

const seedTimeout = 30 * time.Second

func main() {
	dsn, reset := getFlagsValues()
	if dsn == "" {
		slog.Error("too few args", "err", fmt.Errorf("--%s flag: required", dsnFlag))
		fallDown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := storage.NewSQLDB(ctx, dsn)
	if err != nil {
		slog.Error("failed to connect", "err", err)
		fallDown()
	}
	defer db.Close()

	repo := storage.NewProductsRepository(db)

	if reset {
		if _, err := db.ExecContext(ctx, `DELETE FROM products;`); err != nil {
			slog.Error("failed to clear products", "err", err)
			fallDown()
		}
		slog.Info("cleared existing products")
	} else {
		existing, err := repo.ReadRecommended(ctx, 1)
		if err != nil {
			slog.Error("failed to check existing products", "err", err)
			fallDown()
		}
		if len(existing) > 0 {
			slog.Info("products already exist, run with --reset to reseed")
			return
		}
	}

	for _, p := range sampleProducts() {
		if _, err := repo.StoreProduct(ctx, p); err != nil {
			slog.Error("failed to insert product", "name", p.Name, "err", err)
			fallDown()
		}
	}

	slog.Info("database seeded", "nProducts", len(sampleProducts()))
}

func getFlagsValues() (dsn string, reset bool) {
	dsnValue := pflag.StringP(dsnFlag, "d", "", "postgres dsn")
	resetValue := pflag.BoolP("reset", "r", false, "clear products before seeding")
	pflag.Parse()
	return *dsnValue, *resetValue
}

func sampleProducts() []domain.Product {
	price := func(s string) decimal.Decimal {
		return decimal.RequireFromString(s)
	}

	sample := func(name, priceS string) domain.Product {
		return domain.Product{
			Name:        name,
			Description: "This is a sample product",
			Price:       price(priceS),
			Badge:       domain.BadgeNew,
			Rating:      price("4.9"),
			Reviews:     234,
			Image:       "/tantack-circle-logo.png",
			Inventory:   domain.InventoryInStock,
		}
	}

	return []domain.Product{
		sample("Sample Product 1", "19.99"),
		sample("Sample Product 2", "129.99"),
		sample("Sample Product 3", "59.99"),
		sample("Sample Product 4", "99.99"),
	}
}

func fallDown() {
	os.Exit(2)
}
