package sales

import "context"

// Service defines business logic for the sales event log.
type Service interface {
	RecordSale(ctx context.Context, req RecordSaleRequest) (SaleEventResponse, error)

	// ListSales lists an employee's sales for a date range (inclusive dates,
	// "2006-01-02" format).
	ListSales(ctx context.Context, employeeID, fromDate, toDate string) (ListSalesResponse, error)
}
