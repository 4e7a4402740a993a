package usecase

import (
	"gonum.org/v1/gonum/floats"

	"github.com/shopsight/backend/internal/domain"
)

// cosineSimilarity computes dot(a,b)/(|a|*|b|). It is defined as 0 when
// either vector has zero norm, so entities without interactions never
// produce NaN or a division error. Quantities are non-negative, so the
// practical range is [0, 1].
func cosineSimilarity(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// ProductSimilarity treats each product as a vector of quantities over all
// customers and computes pairwise cosine similarity between products.
func ProductSimilarity(interactions *domain.InteractionMatrix) *domain.SimilarityMatrix[string] {
	products := interactions.Products()
	vectors := make([][]float64, len(products))
	for i, product := range products {
		vectors[i] = interactions.Column(product)
	}
	return pairwiseSimilarity(products, vectors)
}

// UserSimilarity treats each customer as a vector of quantities over all
// products and computes pairwise cosine similarity between customers.
func UserSimilarity(interactions *domain.InteractionMatrix) *domain.SimilarityMatrix[int64] {
	customers := interactions.Customers()
	vectors := make([][]float64, len(customers))
	for i, customer := range customers {
		vectors[i] = interactions.Row(customer)
	}
	return pairwiseSimilarity(customers, vectors)
}

// pairwiseSimilarity fills a symmetric similarity matrix from entity vectors.
// Only the upper triangle is computed; SetPair mirrors each score. The
// diagonal comes out as 1 for any entity with nonzero activity and 0 for an
// all-zero entity, matching the zero-norm rule.
func pairwiseSimilarity[ID comparable](ids []ID, vectors [][]float64) *domain.SimilarityMatrix[ID] {
	matrix := domain.NewSimilarityMatrix(ids)
	for i := range ids {
		for j := i; j < len(ids); j++ {
			matrix.SetPair(i, j, cosineSimilarity(vectors[i], vectors[j]))
		}
	}
	return matrix
}
