package domain

// RankedEntry is one scored item in a ranked affinity list. Affinity carries
// the similarity (or purchase share) formatted as a percentage with two
// decimals, e.g. "87.50%". Lists are ordered descending by the underlying
// numeric score, with identifier as tie-break.
type RankedEntry struct {
	Name     string `json:"name"`
	Affinity string `json:"affinity"`
}

// ProductRecommendation is the per-product result of a multi-product query.
// Exactly one of Error or Recommendations is populated.
type ProductRecommendation struct {
	Error           string        `json:"error,omitempty"`
	Recommendations []RankedEntry `json:"recommendations,omitempty"`
}

// UserRecommendation pairs a customer's likely-next-purchase list with the
// customers most similar to them. UserRecommendations may be empty for a
// customer with a similarity row but no interaction history.
type UserRecommendation struct {
	UserRecommendations []RankedEntry `json:"user_recommendations"`
	SimilarUsers        []RankedEntry `json:"similar_users"`
}
