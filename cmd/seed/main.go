// Package main implements a standalone seed script that populates the
// catalog with realistic storefront data: watches across several brands,
// plus accessories, bags, and perfumes. It writes directly to PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	watchBrands = []string{"AIGNER", "Calvin Klein", "Michael Kors", "Tissot", "Guess", "Fossil"}
	bands       = []string{"Stainless Steel", "Leather", "Silicone", "Mesh"}
	caseColors  = []string{"Silver", "Gold", "Rose Gold", "Black"}
	colors      = []string{"Black", "Silver", "Gold", "Blue", "White", "Green"}
	genders     = []string{"men", "women", "unisex"}
	caseSizes   = []string{"28mm", "32mm", "36mm", "38mm", "40mm", "41mm", "42mm", "44mm"}

	otherLines = []struct {
		category string
		brands   []string
		names    []string
	}{
		{"Accessories", []string{"AIGNER", "Guess"}, []string{"Leather Wallet", "Card Holder", "Keyring", "Bracelet"}},
		{"Bags", []string{"AIGNER", "Michael Kors", "Guess"}, []string{"Tote Bag", "Crossbody Bag", "Shoulder Bag", "Clutch"}},
		{"Perfumes", []string{"AIGNER", "Calvin Klein"}, []string{"Eau de Parfum 50ml", "Eau de Toilette 100ml", "Gift Set"}},
	}
)

func main() {
	count := 120
	if v := os.Getenv("SEED_PRODUCT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "catalog"),
		getEnv("POSTGRES_PASSWORD", "catalog_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("CATALOG_DB_NAME", "catalog_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	inserted := 0
	for i := 0; i < count; i++ {
		p := randomProduct(rng, i)
		if err := insertProduct(ctx, pool, p); err != nil {
			log.Fatalf("insert product %d: %v", i, err)
		}
		inserted++
	}

	log.Printf("seeded %d products", inserted)
}

type seedProduct struct {
	id        string
	name      string
	brand     string
	category  string
	price     float64
	discount  float64
	imageURL  string
	stock     int
	rating    float64
	reviews   int
	gender    string
	caseSize  string
	band      string
	caseColor string
	color     string
	specs     map[string]any
	createdAt time.Time
}

func randomProduct(rng *rand.Rand, i int) seedProduct {
	// Roughly 60% watches, the rest spread over the other lines.
	if rng.Intn(10) < 6 {
		return randomWatch(rng, i)
	}

	line := otherLines[rng.Intn(len(otherLines))]
	brand := line.brands[rng.Intn(len(line.brands))]
	name := line.names[rng.Intn(len(line.names))]

	return seedProduct{
		id:        uuid.NewString(),
		name:      fmt.Sprintf("%s %s", brand, name),
		brand:     brand,
		category:  line.category,
		price:     float64(16 + rng.Intn(300)),
		discount:  randomDiscount(rng),
		imageURL:  fmt.Sprintf("https://cdn.example.com/products/%s-%d.jpg", line.category, i),
		stock:     rng.Intn(20),
		rating:    3 + rng.Float64()*2,
		reviews:   rng.Intn(80),
		color:     colors[rng.Intn(len(colors))],
		specs:     map[string]any{"line": line.category},
		createdAt: randomCreatedAt(rng),
	}
}

func randomWatch(rng *rand.Rand, i int) seedProduct {
	brand := watchBrands[rng.Intn(len(watchBrands))]
	gender := genders[rng.Intn(len(genders))]
	caseSize := caseSizes[rng.Intn(len(caseSizes))]
	band := bands[rng.Intn(len(bands))]
	caseColor := caseColors[rng.Intn(len(caseColors))]

	return seedProduct{
		id:        uuid.NewString(),
		name:      fmt.Sprintf("%s %s Watch %03d", brand, caseColor, i),
		brand:     brand,
		category:  "Watches",
		price:     float64(45 + rng.Intn(1180)),
		discount:  randomDiscount(rng),
		imageURL:  fmt.Sprintf("https://cdn.example.com/products/watch-%d.jpg", i),
		stock:     rng.Intn(15),
		rating:    3 + rng.Float64()*2,
		reviews:   rng.Intn(120),
		gender:    gender,
		caseSize:  caseSize,
		band:      band,
		caseColor: caseColor,
		color:     colors[rng.Intn(len(colors))],
		specs: map[string]any{
			"caseSize":  caseSize,
			"band":      band,
			"caseColor": caseColor,
			"movement":  []string{"quartz", "automatic"}[rng.Intn(2)],
		},
		createdAt: randomCreatedAt(rng),
	}
}

func randomDiscount(rng *rand.Rand) float64 {
	if rng.Intn(3) != 0 {
		return 0
	}
	return float64(5 * (1 + rng.Intn(10)))
}

func randomCreatedAt(rng *rand.Rand) time.Time {
	return time.Now().UTC().Add(-time.Duration(rng.Intn(365*24)) * time.Hour)
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p seedProduct) error {
	specsJSON, err := json.Marshal(p.specs)
	if err != nil {
		return fmt.Errorf("marshal specifications: %w", err)
	}

	query := `
		INSERT INTO products (id, name, brand, category, price, discount, currency, image_url,
			stock, rating, reviews, gender, case_size, band, case_color, color,
			specifications, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO NOTHING`

	_, err = pool.Exec(ctx, query,
		p.id, p.name, p.brand, p.category, p.price, p.discount, "OMR", p.imageURL,
		p.stock, p.rating, p.reviews, p.gender, p.caseSize, p.band, p.caseColor, p.color,
		specsJSON, p.createdAt,
	)
	return err
}
