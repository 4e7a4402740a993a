package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one cleaned line item from an uploaded dataset.
// After cleaning, Quantity is always positive and CustomerID is always set.
type Transaction struct {
	CustomerID  int64           `json:"customerId"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"` // Quantity × UnitPrice
	InvoiceDate time.Time       `json:"invoiceDate"`
}

// DailyRevenue is the summed line totals of one calendar day.
type DailyRevenue struct {
	Date    time.Time
	Revenue decimal.Decimal
}
