package repos

import (
	"context"
	"errors"
	"testing"

	"shopassist/internal/domain"
)

func openTestDB(t *testing.T) (*ProductRepo, *RecommendationRepo) {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepo(db), NewRecommendationRepo(db)
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := seedIfEmpty(db); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n != len(SeedProducts) {
		t.Fatalf("want %d seeded rows, got %d", len(SeedProducts), n)
	}
}

func TestProductRepo_NullableColumns(t *testing.T) {
	prods, _ := openTestDB(t)
	p, err := prods.Get(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageURL != nil {
		t.Fatalf("image_url should be NULL for seeded jeans, got %q", *p.ImageURL)
	}
	if p.Specifications()["fit"] != "Straight" {
		t.Fatalf("specs = %v", p.Specifications())
	}
}

func TestProductRepo_GetMissing(t *testing.T) {
	prods, _ := openTestDB(t)
	_, err := prods.Get(context.Background(), 404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestProductRepo_StoreErrorsAreKinded(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	prods := NewProductRepo(db)
	_ = db.Close()

	_, err = prods.ListAll(context.Background())
	if !domain.IsKind(err, domain.KindStoreUnavailable) {
		t.Fatalf("want store_unavailable, got %v", err)
	}
}

func TestRecommendationRepo_TopQueries(t *testing.T) {
	_, recs := openTestDB(t)
	ctx := context.Background()

	inserts := []struct {
		id, q string
	}{
		{"a", "laptop"}, {"b", "phone"}, {"c", "phone"}, {"d", "shoes"}, {"e", "laptop"}, {"f", "phone"},
	}
	for _, in := range inserts {
		if err := recs.Insert(ctx, in.id, in.q, nil, "{}"); err != nil {
			t.Fatal(err)
		}
	}

	top, err := recs.TopQueries(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("limit ignored: %+v", top)
	}
	if top[0].UserQuery != "phone" || top[0].Frequency != 3 || top[1].UserQuery != "laptop" {
		t.Fatalf("unexpected order: %+v", top)
	}

	rows, err := recs.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].ProductsRaw != "[]" {
		t.Fatalf("nil ids should store [], got %q", rows[0].ProductsRaw)
	}
}

func TestRecommendationRepo_DuplicateIDRejected(t *testing.T) {
	_, recs := openTestDB(t)
	ctx := context.Background()
	if err := recs.Insert(ctx, "same", "q", []int64{1}, "{}"); err != nil {
		t.Fatal(err)
	}
	err := recs.Insert(ctx, "same", "q", []int64{1}, "{}")
	if !domain.IsKind(err, domain.KindStoreUnavailable) {
		t.Fatalf("want store_unavailable on duplicate id, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("escapeLike = %q", got)
	}
}
