package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/shopsight/backend/internal/domain"
)

// Expected column headers in the uploaded transaction table. Extra columns
// (InvoiceNo, StockCode, Country, ...) are ignored.
const (
	columnCustomerID  = "CustomerID"
	columnDescription = "Description"
	columnQuantity    = "Quantity"
	columnUnitPrice   = "UnitPrice"
	columnInvoiceDate = "InvoiceDate"
)

var requiredColumns = []string{
	columnCustomerID,
	columnDescription,
	columnQuantity,
	columnUnitPrice,
	columnInvoiceDate,
}

// dateLayouts are tried in order when parsing InvoiceDate. The upstream
// retail export uses the first form ("12/1/2010 8:26").
var dateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadTransactions parses an ISO-8859-1 encoded CSV stream into a cleaned
// transaction set. Rows without a customer identifier and rows with a
// non-positive quantity are dropped; every surviving row gets a derived line
// total. Any malformed surviving row fails the whole read - there is no
// partial dataset.
func ReadTransactions(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row: %v", domain.ErrMalformedDataset, err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []domain.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedDataset, line, err)
		}

		tx, keep, err := parseRecord(record, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedDataset, line, err)
		}
		if keep {
			transactions = append(transactions, tx)
		}
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: no usable rows after cleaning", domain.ErrMalformedDataset)
	}

	return transactions, nil
}

// mapColumns resolves the required column names to record positions.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", domain.ErrMalformedDataset, name)
		}
	}
	return columns, nil
}

// parseRecord converts one CSV record. keep is false for rows the cleaning
// contract drops (missing customer, non-positive quantity).
func parseRecord(record []string, columns map[string]int) (tx domain.Transaction, keep bool, err error) {
	customerField := field(record, columns[columnCustomerID])
	if customerField == "" {
		return domain.Transaction{}, false, nil
	}

	customerID, err := parseCustomerID(customerField)
	if err != nil {
		return domain.Transaction{}, false, err
	}

	quantity, err := strconv.ParseInt(field(record, columns[columnQuantity]), 10, 64)
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("invalid quantity: %v", err)
	}
	if quantity <= 0 {
		// Returns and cancellations carry negative or zero quantities.
		return domain.Transaction{}, false, nil
	}

	unitPrice, err := decimal.NewFromString(field(record, columns[columnUnitPrice]))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("invalid unit price: %v", err)
	}

	invoiceDate, err := parseInvoiceDate(field(record, columns[columnInvoiceDate]))
	if err != nil {
		return domain.Transaction{}, false, err
	}

	return domain.Transaction{
		CustomerID:  customerID,
		Description: field(record, columns[columnDescription]),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(quantity)),
		InvoiceDate: invoiceDate,
	}, true, nil
}

// parseCustomerID accepts integer identifiers and float renderings with an
// integral value ("17850" and "17850.0" name the same customer).
func parseCustomerID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid customer identifier %q", s)
	}
	return int64(f), nil
}

func parseInvoiceDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid invoice date %q", s)
}

func field(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
