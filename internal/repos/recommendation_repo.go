package repos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"shopassist/internal/domain"
)

type RecommendationRepo struct{ db *sqlx.DB }

func NewRecommendationRepo(db *sqlx.DB) *RecommendationRepo { return &RecommendationRepo{db: db} }

// Insert appends one history row. Rows are never updated or deleted.
func (r *RecommendationRepo) Insert(ctx context.Context, id, query string, productIDs []int64, aiResponse string) error {
	if productIDs == nil {
		productIDs = []int64{}
	}
	ids, err := json.Marshal(productIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recommendations(id,user_query,recommended_products,ai_response)
		VALUES(?,?,?,?)
	`, id, query, string(ids), aiResponse)
	if err != nil {
		return domain.StoreUnavailable("insert recommendation", err)
	}
	return nil
}

// TopQueries reports the most frequent queries, most frequent first.
func (r *RecommendationRepo) TopQueries(ctx context.Context, limit int) ([]domain.QueryFrequency, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.QueryFrequency{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT user_query, COUNT(*) AS frequency
		FROM recommendations
		GROUP BY user_query
		ORDER BY frequency DESC, user_query ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, domain.StoreUnavailable("top queries", err)
	}
	return out, nil
}

func (r *RecommendationRepo) List(ctx context.Context) ([]domain.RecommendationRecord, error) {
	out := []domain.RecommendationRecord{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_query, recommended_products, ai_response, COALESCE(created_at,'') AS created_at
		FROM recommendations
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, domain.StoreUnavailable("list recommendations", err)
	}
	return out, nil
}
