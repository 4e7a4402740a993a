package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopsight/backend/internal/domain"
	"github.com/shopsight/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analytics      *usecase.AnalyticsService
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(analytics *usecase.AnalyticsService, maxUploadBytes int64) *Handler {
	return &Handler{
		analytics:      analytics,
		maxUploadBytes: maxUploadBytes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopsight-backend",
		"version": "1.0.0",
	})
}

// SubmitDataset accepts a transaction CSV upload and runs the full analytics
// pipeline on it. A failed run reports the failure and leaves previously
// published results untouched.
func (h *Handler) SubmitDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer file.Close()

	snapshot, err := h.analytics.ProcessDataset(c.Request.Context(), file)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "File processed successfully",
		"records":   snapshot.RecordCount,
		"customers": len(snapshot.Interactions.Customers()),
		"products":  len(snapshot.Interactions.Products()),
	})
}

// productQuery is the request body for product recommendations
type productQuery struct {
	Products []string `json:"products"`
}

// RecommendProducts returns ranked affinity lists for the queried products.
// Unknown products are reported per item inside the response body.
func (h *Handler) RecommendProducts(c *gin.Context) {
	var req productQuery
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Products should be a list of product names"})
		return
	}

	results, err := h.analytics.RecommendProducts(req.Products)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// userQuery is the request body for user recommendations. user_id may arrive
// as a JSON number or a numeric string.
type userQuery struct {
	UserID any `json:"user_id"`
}

// RecommendForUser returns a customer's likely next purchases and their most
// similar customers.
func (h *Handler) RecommendForUser(c *gin.Context) {
	var req userQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	recommendation, err := h.analytics.RecommendForUser(userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// forecastEntry is one predicted day in the forecast response
type forecastEntry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// GetForecast returns the published 30-day revenue forecast in date order.
func (h *Handler) GetForecast(c *gin.Context) {
	points, err := h.analytics.Forecast()
	if err != nil {
		h.writeError(c, err)
		return
	}

	response := make([]forecastEntry, 0, len(points))
	for _, p := range points {
		response = append(response, forecastEntry{
			Date:  p.Date.Format("2006-01-02"),
			Value: p.Value,
		})
	}
	c.JSON(http.StatusOK, response)
}

// parseUserID accepts integer-like identifiers in the forms JSON encoders
// produce: numbers and numeric strings.
func parseUserID(value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("non-integer user id %v", v)
		}
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid user id %q", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("missing or malformed user id")
	}
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrStateNotReady):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrStateNotReady.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMalformedDataset), errors.Is(err, domain.ErrForecastFit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
