package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopsight/backend/config"
	httpDelivery "github.com/shopsight/backend/internal/delivery/http"
	"github.com/shopsight/backend/internal/infrastructure/state"
	"github.com/shopsight/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopSight Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	snapshotStore := state.NewMemoryStore()

	// Initialize usecase layer
	analyticsService := usecase.NewAnalyticsService(
		snapshotStore,
		usecase.AnalyticsServiceConfig{
			ForecastHorizon:   cfg.Pipeline.ForecastHorizon,
			SeasonalityPeriod: cfg.Pipeline.SeasonalityPeriod,
			TopProducts:       cfg.Pipeline.TopProducts,
		},
	)

	log.Printf("Pipeline: horizon=%dd, seasonality=%dd, top_products=%d",
		cfg.Pipeline.ForecastHorizon,
		cfg.Pipeline.SeasonalityPeriod,
		cfg.Pipeline.TopProducts)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analyticsService, cfg.Upload.MaxSizeMB<<20)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
