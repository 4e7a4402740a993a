package domain

import "errors"

var (
	// ErrStateNotReady is returned when a query arrives before any dataset
	// has been processed successfully
	ErrStateNotReady = errors.New("data not uploaded or processed")

	// ErrUserNotFound is returned when a queried customer has no row in the
	// user-similarity matrix
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRequest is returned when request parameters are malformed
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMalformedDataset is returned when an uploaded dataset cannot be
	// parsed or cleaned into a usable transaction set
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrForecastFit is returned when the forecasting model cannot be fit to
	// the observed revenue series
	ErrForecastFit = errors.New("forecast fit failed")
)
