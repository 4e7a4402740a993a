package usecase

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/shopsight/backend/internal/domain"
)

// testSnapshot builds a snapshot from transactions the way the pipeline does,
// minus the forecast.
func testSnapshot(transactions []domain.Transaction) *domain.Snapshot {
	interactions := domain.NewInteractionMatrix(transactions)
	return &domain.Snapshot{
		Interactions:      interactions,
		ProductSimilarity: ProductSimilarity(interactions),
		UserSimilarity:    UserSimilarity(interactions),
	}
}

func parsePercent(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		t.Fatalf("affinity %q is not a percentage: %v", s, err)
	}
	return v
}

func TestRecommendProducts(t *testing.T) {
	snapshot := testSnapshot([]domain.Transaction{
		makeTx(1, "X", 5, 1),
		makeTx(1, "Y", 5, 1),
		makeTx(2, "X", 5, 2),
		makeTx(3, "Z", 10, 3),
	})
	recommender := NewRecommender(10)

	t.Run("ranks other products by similarity", func(t *testing.T) {
		results := recommender.RecommendProducts(snapshot, []string{"X"})
		rec := results["X"]
		if rec.Error != "" {
			t.Fatalf("unexpected error marker: %s", rec.Error)
		}
		if len(rec.Recommendations) != 2 {
			t.Fatalf("got %d recommendations, want 2", len(rec.Recommendations))
		}
		if rec.Recommendations[0].Name != "Y" {
			t.Errorf("top recommendation = %s, want Y", rec.Recommendations[0].Name)
		}
		if got := rec.Recommendations[0].Affinity; got != "70.71%" {
			t.Errorf("top affinity = %s, want 70.71%%", got)
		}
	})

	t.Run("never includes the queried product", func(t *testing.T) {
		results := recommender.RecommendProducts(snapshot, []string{"X", "Y", "Z"})
		for product, rec := range results {
			for _, entry := range rec.Recommendations {
				if entry.Name == product {
					t.Errorf("recommendations for %s include itself", product)
				}
			}
		}
	})

	t.Run("descending order with identifier tie-break", func(t *testing.T) {
		// Z is orthogonal to both X and Y: a pure tie at score 0.
		results := recommender.RecommendProducts(snapshot, []string{"Z"})
		rec := results["Z"]
		if len(rec.Recommendations) != 2 {
			t.Fatalf("got %d recommendations, want 2", len(rec.Recommendations))
		}
		if rec.Recommendations[0].Name != "X" || rec.Recommendations[1].Name != "Y" {
			t.Errorf("tie order = %s, %s; want X, Y",
				rec.Recommendations[0].Name, rec.Recommendations[1].Name)
		}
		prev := parsePercent(t, rec.Recommendations[0].Affinity)
		for _, entry := range rec.Recommendations[1:] {
			cur := parsePercent(t, entry.Affinity)
			if cur > prev {
				t.Errorf("recommendations not in descending order")
			}
			prev = cur
		}
	})

	t.Run("unknown product gets a per-item marker", func(t *testing.T) {
		results := recommender.RecommendProducts(snapshot, []string{"X", "MISSING"})
		if results["MISSING"].Error != "Product not found" {
			t.Errorf("marker = %q, want %q", results["MISSING"].Error, "Product not found")
		}
		// The valid entry in the same request still succeeds.
		if results["X"].Error != "" || len(results["X"].Recommendations) == 0 {
			t.Error("valid product in mixed request did not return a ranked list")
		}
	})

	t.Run("truncates to the configured top count", func(t *testing.T) {
		small := NewRecommender(1)
		results := small.RecommendProducts(snapshot, []string{"X"})
		if got := len(results["X"].Recommendations); got != 1 {
			t.Errorf("got %d recommendations, want 1", got)
		}
	})
}

func TestRecommendForUser(t *testing.T) {
	snapshot := testSnapshot([]domain.Transaction{
		makeTx(1, "X", 5, 1),
		makeTx(1, "Y", 5, 1),
		makeTx(2, "X", 5, 2),
		makeTx(3, "Z", 10, 3),
	})
	recommender := NewRecommender(10)

	t.Run("unknown user", func(t *testing.T) {
		_, err := recommender.RecommendForUser(snapshot, 999)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("purchase shares sum to 100 percent", func(t *testing.T) {
		rec, err := recommender.RecommendForUser(snapshot, 1)
		if err != nil {
			t.Fatalf("RecommendForUser() error = %v", err)
		}
		if len(rec.UserRecommendations) != 2 {
			t.Fatalf("got %d user recommendations, want 2", len(rec.UserRecommendations))
		}
		var sum float64
		for _, entry := range rec.UserRecommendations {
			sum += parsePercent(t, entry.Affinity)
		}
		if sum < 99.9 || sum > 100.1 {
			t.Errorf("shares sum to %v, want ~100", sum)
		}
		// Equal shares break ties on product name ascending.
		if rec.UserRecommendations[0].Name != "X" || rec.UserRecommendations[1].Name != "Y" {
			t.Errorf("share order = %s, %s; want X, Y",
				rec.UserRecommendations[0].Name, rec.UserRecommendations[1].Name)
		}
	})

	t.Run("similar users are strictly positive and exclude self", func(t *testing.T) {
		rec, err := recommender.RecommendForUser(snapshot, 1)
		if err != nil {
			t.Fatalf("RecommendForUser() error = %v", err)
		}
		if len(rec.SimilarUsers) != 1 {
			t.Fatalf("got %d similar users, want 1", len(rec.SimilarUsers))
		}
		if rec.SimilarUsers[0].Name != "2" {
			t.Errorf("similar user = %s, want 2", rec.SimilarUsers[0].Name)
		}
		if got := parsePercent(t, rec.SimilarUsers[0].Affinity); got <= 0 {
			t.Errorf("similarity %v not strictly positive", got)
		}
	})
}
