package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopassist/internal/ai"
	"shopassist/internal/domain"
)

type fakeGen struct {
	text   string
	err    error
	delay  time.Duration
	calls  int
	prompt string
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func products() []domain.Product {
	r := 4.4
	return []domain.Product{
		{ID: 10, Name: "Google Pixel 7a", Category: "Electronics", Price: 399.99, Brand: "Google", Rating: &r,
			Description: "Budget-friendly Pixel smartphone", SpecsJSON: `{"camera":"64MP"}`},
		{ID: 11, Name: "OnePlus Nord CE 3", Category: "Electronics", Price: 349.99, Brand: "OnePlus",
			Description: "Mid-range smartphone"},
	}
}

func TestClient_NoCredentials(t *testing.T) {
	c := ai.NewClient(nil, time.Second, 0)
	_, err := c.Recommend(context.Background(), "phone", products())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAIProvider))
	assert.False(t, c.Enabled())
}

func TestClient_ValidResponse(t *testing.T) {
	gen := &fakeGen{text: `{"recommendations":[{"productId":11,"relevanceScore":0.8,"reasoning":"fast charging"}],"summary":"ok","alternativeSuggestions":"none"}`}
	c := ai.NewClient(gen, time.Second, 0)

	res, err := c.Recommend(context.Background(), "phone under $500", products())
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "OnePlus Nord CE 3", res.Recommendations[0].Product.Name)
	assert.Equal(t, 1, gen.calls)

	// prompt carries the query and parsed specifications
	assert.Contains(t, gen.prompt, `"phone under $500"`)
	assert.Contains(t, gen.prompt, `"camera": "64MP"`)
	assert.Contains(t, gen.prompt, `"id": 10`)
}

func TestClient_ProviderError(t *testing.T) {
	gen := &fakeGen{err: errors.New("503 unavailable")}
	c := ai.NewClient(gen, time.Second, 0)
	_, err := c.Recommend(context.Background(), "phone", products())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAIProvider))
	assert.Equal(t, 1, gen.calls, "no retry")
}

func TestClient_Timeout(t *testing.T) {
	gen := &fakeGen{text: `{"recommendations":[]}`, delay: time.Second}
	c := ai.NewClient(gen, 20*time.Millisecond, 0)
	_, err := c.Recommend(context.Background(), "phone", products())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAIProvider))
	assert.True(t, strings.Contains(err.Error(), "timeout"))
}

func TestClient_MalformedOutput(t *testing.T) {
	gen := &fakeGen{text: "Sure! The Pixel is great."}
	c := ai.NewClient(gen, time.Second, 0)
	_, err := c.Recommend(context.Background(), "phone", products())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindMalformedAI))
}

func TestClient_RateBudget(t *testing.T) {
	gen := &fakeGen{text: `{"recommendations":[]}`}
	c := ai.NewClient(gen, time.Second, 1)

	_, err := c.Recommend(context.Background(), "phone", products())
	require.NoError(t, err)
	_, err = c.Recommend(context.Background(), "phone", products())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAIProvider))
	assert.Equal(t, 1, gen.calls)
}

func TestClient_ZeroRateIsUnlimited(t *testing.T) {
	gen := &fakeGen{text: `{"recommendations":[]}`}
	c := ai.NewClient(gen, time.Second, 0)

	for i := 0; i < 100; i++ {
		_, err := c.Recommend(context.Background(), "phone", products())
		require.NoError(t, err)
	}
	assert.Equal(t, 100, gen.calls)
}
