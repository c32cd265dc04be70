package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
	"dermamatch/internal/enrich"
	"dermamatch/internal/repository"
)

// Carga un fixture JSON de productos, los pasa por el enriquecedor
// (tags + safety score) y hace upsert en el catalogo.
func main() {
	fixture := flag.String("fixture", "fixtures/products.json", "path to products JSON")
	flag.Parse()

	ctx := context.Background()

	_ = godotenv.Load()

	logger := zap.NewExample()
	defer logger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	data, err := os.ReadFile(*fixture)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	repo := repository.NewPgProductRepository(pool)

	seeded := 0
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		enriched := enrich.Enrich(p)
		if err := repo.UpsertSeed(ctx, enriched); err != nil {
			logger.Error("upsert product failed",
				zap.String("product_id", enriched.ID),
				zap.Error(err),
			)
			continue
		}
		seeded++
		logger.Info("product seeded",
			zap.String("product_id", enriched.ID),
			zap.String("name", enriched.Name),
			zap.Strings("tags", enriched.Tags),
		)
	}

	logger.Info("seed finished", zap.Int("seeded", seeded), zap.Int("total", len(products)))
}
