package usecase

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopsight/backend/internal/domain"
	"github.com/shopsight/backend/internal/infrastructure/dataset"
)

// AnalyticsServiceConfig holds tuning knobs for the analytics pipeline.
type AnalyticsServiceConfig struct {
	ForecastHorizon   int
	SeasonalityPeriod int
	TopProducts       int
}

// AnalyticsService runs the analytics pipeline on dataset submissions and
// answers recommendation/forecast queries against the latest published
// snapshot.
type AnalyticsService struct {
	store       domain.SnapshotStore
	forecaster  *Forecaster
	recommender *Recommender
}

// NewAnalyticsService creates the service with its dependencies.
func NewAnalyticsService(store domain.SnapshotStore, config AnalyticsServiceConfig) *AnalyticsService {
	return &AnalyticsService{
		store:       store,
		forecaster:  NewForecaster(config.ForecastHorizon, config.SeasonalityPeriod),
		recommender: NewRecommender(config.TopProducts),
	}
}

// ProcessDataset runs the full pipeline on an uploaded dataset:
// ingest -> interaction matrix -> similarity matrices -> forecast, then
// publishes all four artifacts as one snapshot. Any failure returns before
// publishing, leaving the previous snapshot intact.
func (s *AnalyticsService) ProcessDataset(ctx context.Context, r io.Reader) (*domain.Snapshot, error) {
	transactions, err := dataset.ReadTransactions(r)
	if err != nil {
		return nil, err
	}

	interactions := domain.NewInteractionMatrix(transactions)

	// The two similarity fits and the forecast fit are independent.
	var (
		productSim *domain.SimilarityMatrix[string]
		userSim    *domain.SimilarityMatrix[int64]
		forecast   []domain.ForecastPoint
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		productSim = ProductSimilarity(interactions)
		return nil
	})
	g.Go(func() error {
		userSim = UserSimilarity(interactions)
		return nil
	})
	g.Go(func() error {
		var fitErr error
		forecast, fitErr = s.forecaster.Forecast(transactions)
		return fitErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// An abandoned run must not replace the authoritative snapshot.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		Interactions:      interactions,
		ProductSimilarity: productSim,
		UserSimilarity:    userSim,
		Forecast:          forecast,
		ProcessedAt:       time.Now(),
		RecordCount:       len(transactions),
	}
	s.store.Replace(snapshot)
	return snapshot, nil
}

// RecommendProducts answers a multi-product affinity query against the
// current snapshot. Unknown products surface as per-item markers inside the
// result, never as a request-level error.
func (s *AnalyticsService) RecommendProducts(products []string) (map[string]domain.ProductRecommendation, error) {
	if len(products) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	snapshot, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return s.recommender.RecommendProducts(snapshot, products), nil
}

// RecommendForUser answers a single-customer affinity query against the
// current snapshot.
func (s *AnalyticsService) RecommendForUser(userID int64) (*domain.UserRecommendation, error) {
	snapshot, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return s.recommender.RecommendForUser(snapshot, userID)
}

// Forecast returns the published revenue forecast in date order.
func (s *AnalyticsService) Forecast() ([]domain.ForecastPoint, error) {
	snapshot, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return snapshot.Forecast, nil
}
