package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"shopassist/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" is a separate database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA busy_timeout = 5000;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  rating NUMERIC CHECK (rating IS NULL OR (rating >= 0 AND rating <= 5)),
  image_url TEXT,
  specifications TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Recommendation history (append-only, analytics only)
CREATE TABLE IF NOT EXISTS recommendations(
  id TEXT PRIMARY KEY,
  user_query TEXT NOT NULL,
  recommended_products TEXT NOT NULL,
  ai_response TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_recommendations_query ON recommendations(user_query);
`
	_, err := db.Exec(schema)
	return err
}

func ptr[T any](v T) *T { return &v }

// SeedProducts is the starter catalog written on first startup.
var SeedProducts = []domain.Product{
	{Name: "iPhone 15 Pro", Category: "Electronics", Price: 999.99, Brand: "Apple", Rating: ptr(4.8),
		Description: "Latest iPhone smartphone with A17 Pro chip and titanium design",
		ImageURL:    ptr("https://www.apple.com/v/iphone/home/cd/images/overview/consider/apple_intelligence__gbh77cvflkia_xlarge_2x.jpg"),
		SpecsJSON:   `{"storage":"128GB","camera":"48MP","display":"6.1 inch","color":"Natural Titanium"}`},
	{Name: "Samsung Galaxy S24 Ultra", Category: "Electronics", Price: 1199.99, Brand: "Samsung", Rating: ptr(4.7),
		Description: "Premium Android smartphone with S Pen and AI features",
		ImageURL:    ptr("https://images.samsung.com/in/smartphones/galaxy-s24-ultra/images/galaxy-s24-ultra-highlights-color-carousel-exclusive-tb.jpg"),
		SpecsJSON:   `{"storage":"256GB","camera":"200MP","display":"6.8 inch","color":"Titanium Black"}`},
	{Name: "MacBook Air M3", Category: "Electronics", Price: 1299.99, Brand: "Apple", Rating: ptr(4.9),
		Description: "Lightweight laptop with M3 chip and all-day battery",
		ImageURL:    ptr("https://www.apple.com/v/macbook-air/u/images/overview/design/color/design_top_skyblue__eepkvlvjzcia_medium_2x.jpg"),
		SpecsJSON:   `{"processor":"M3","ram":"8GB","storage":"256GB SSD","display":"13.6 inch"}`},
	{Name: "Nike Air Max 270", Category: "Fashion", Price: 150.00, Brand: "Nike", Rating: ptr(4.4),
		Description: "Comfortable lifestyle sneakers with Air Max cushioning",
		ImageURL:    ptr("https://static.nike.com/a/images/c_limit,w_592,f_auto/t_product_v1/ohwu3kmhyqivaku9sxld/NIKE+AIR+MAX+270+%28PS%29.png"),
		SpecsJSON:   `{"size":"US 9","color":"Black/White","material":"Mesh and synthetic","type":"Running"}`},
	{Name: "Levi's 501 Original Jeans", Category: "Fashion", Price: 89.99, Brand: "Levi's", Rating: ptr(4.3),
		Description: "Classic straight-leg jeans with authentic fit",
		SpecsJSON:   `{"size":"32x32","color":"Medium Blue","fit":"Straight","material":"100% Cotton"}`},
	{Name: "KitchenAid Stand Mixer", Category: "Home & Garden", Price: 379.99, Brand: "KitchenAid", Rating: ptr(4.8),
		Description: "Professional-grade stand mixer for baking enthusiasts",
		SpecsJSON:   `{"capacity":"5 quart","power":"325 watts","color":"Empire Red","attachments":"Dough hook, beater, whip"}`},
	{Name: "Dyson V15 Detect", Category: "Home & Garden", Price: 649.99, Brand: "Dyson", Rating: ptr(4.7),
		Description: "Cordless vacuum with laser dust detection",
		SpecsJSON:   `{"type":"Cordless","battery":"60 minutes","weight":"6.8 lbs","features":"Laser detection, LCD screen"}`},
	{Name: "Fitbit Charge 6", Category: "Sports", Price: 199.99, Brand: "Fitbit", Rating: ptr(4.5),
		Description: "Advanced fitness tracker with GPS and heart rate monitoring",
		SpecsJSON:   `{"battery":"7 days","gps":"Built-in","water_resistance":"50 meters","features":"Heart rate, sleep tracking"}`},
	{Name: "moto edge", Category: "Electronics", Price: 199.99, Brand: "Motorola", Rating: ptr(4.2),
		Description: "Affordable smartphone with great performance and long battery life",
		SpecsJSON:   `{"storage":"128GB","camera":"50MP","display":"6.6 inch","battery":"5000mAh","os":"Android 15"}`},
	{Name: "Google Pixel 7a", Category: "Electronics", Price: 399.99, Brand: "Google", Rating: ptr(4.4),
		Description: "Budget-friendly Pixel smartphone with excellent camera and clean Android experience",
		SpecsJSON:   `{"storage":"128GB","camera":"64MP","display":"6.1 inch","battery":"4385mAh","os":"Android 14"}`},
	{Name: "OnePlus Nord CE 3", Category: "Electronics", Price: 349.99, Brand: "OnePlus", Rating: ptr(4.3),
		Description: "Mid-range smartphone with fast charging and smooth performance",
		SpecsJSON:   `{"storage":"256GB","camera":"50MP","display":"6.7 inch","battery":"5000mAh","charging":"80W fast charging"}`},
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting sample products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for _, p := range SeedProducts {
		if _, err := tx.NamedExec(`
			INSERT INTO products(name,category,price,description,brand,rating,image_url,specifications)
			VALUES(:name,:category,:price,:description,:brand,:rating,:image_url,:specifications)
		`, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}
