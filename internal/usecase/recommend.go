package usecase

import (
	"cmp"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopsight/backend/internal/domain"
)

const defaultTopProducts = 10

// productNotFoundMarker is the per-item error embedded in a multi-product
// response for unknown product names.
const productNotFoundMarker = "Product not found"

// Recommender derives ranked affinity lists from a pipeline snapshot.
// Numeric scores are the sort key throughout; percentages are formatted only
// when building the response. Ties break on identifier ascending.
type Recommender struct {
	topK int
}

// NewRecommender creates a recommender returning at most topK products per
// query. Non-positive topK falls back to 10.
func NewRecommender(topK int) *Recommender {
	if topK <= 0 {
		topK = defaultTopProducts
	}
	return &Recommender{topK: topK}
}

// RecommendProducts ranks, for every queried product, all other products by
// similarity. Unknown products get a per-item error marker instead of
// failing the whole query.
func (r *Recommender) RecommendProducts(snapshot *domain.Snapshot, products []string) map[string]domain.ProductRecommendation {
	results := make(map[string]domain.ProductRecommendation, len(products))
	for _, product := range products {
		if !snapshot.ProductSimilarity.Has(product) {
			results[product] = domain.ProductRecommendation{Error: productNotFoundMarker}
			continue
		}

		neighbors := snapshot.ProductSimilarity.Neighbors(product)
		sortNeighbors(neighbors)
		if len(neighbors) > r.topK {
			neighbors = neighbors[:r.topK]
		}
		results[product] = domain.ProductRecommendation{
			Recommendations: rankedEntries(neighbors, func(id string) string { return id }),
		}
	}
	return results
}

// RecommendForUser returns a customer's likely-next-purchase list (each
// purchased product's share of their total quantity) and the customers most
// similar to them. A customer known to the similarity matrix but without
// interaction history gets an empty purchase list, not an error.
func (r *Recommender) RecommendForUser(snapshot *domain.Snapshot, userID int64) (*domain.UserRecommendation, error) {
	if !snapshot.UserSimilarity.Has(userID) {
		return nil, domain.ErrUserNotFound
	}

	purchases := make([]domain.Neighbor[string], 0)
	if snapshot.Interactions.HasCustomer(userID) {
		total := snapshot.Interactions.CustomerTotal(userID)
		for _, product := range snapshot.Interactions.Products() {
			qty := snapshot.Interactions.Quantity(userID, product)
			if qty > 0 && total > 0 {
				purchases = append(purchases, domain.Neighbor[string]{
					ID:    product,
					Score: float64(qty) / float64(total),
				})
			}
		}
		sortNeighbors(purchases)
	}

	similar := make([]domain.Neighbor[int64], 0)
	for _, n := range snapshot.UserSimilarity.Neighbors(userID) {
		if n.Score > 0 {
			similar = append(similar, n)
		}
	}
	sortNeighbors(similar)

	return &domain.UserRecommendation{
		UserRecommendations: rankedEntries(purchases, func(id string) string { return id }),
		SimilarUsers: rankedEntries(similar, func(id int64) string {
			return strconv.FormatInt(id, 10)
		}),
	}, nil
}

// sortNeighbors orders by score descending, identifier ascending on ties.
func sortNeighbors[ID cmp.Ordered](neighbors []domain.Neighbor[ID]) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].ID < neighbors[j].ID
	})
}

// rankedEntries renders sorted neighbors into response entries, formatting
// scores as percentages at this final boundary only.
func rankedEntries[ID cmp.Ordered](neighbors []domain.Neighbor[ID], name func(ID) string) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(neighbors))
	for _, n := range neighbors {
		entries = append(entries, domain.RankedEntry{
			Name:     name(n.ID),
			Affinity: formatPercent(n.Score),
		})
	}
	return entries
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
