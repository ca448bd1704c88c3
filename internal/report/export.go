package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"grocerypos/backend/internal/domain"
)

// WriteSalesSummary writes one row per transaction: id, date, item count,
// subtotal, tax and total, amounts with two decimals.
func WriteSalesSummary(w io.Writer, transactions []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Transaction ID", "Date", "Items", "SubTotal", "Tax", "Total"}); err != nil {
		return err
	}

	for _, tx := range transactions {
		row := []string{
			strconv.Itoa(tx.ID),
			tx.Date.Format("2006-01-02 15:04"),
			strconv.Itoa(len(tx.Items)),
			tx.SubTotal.StringFixed(2),
			tx.TaxAmount.StringFixed(2),
			tx.TotalAmount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportSalesSummary writes the summary to path, creating or truncating it.
func ExportSalesSummary(path string, transactions []domain.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := WriteSalesSummary(f, transactions); err != nil {
		f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

// ExportFileName builds the conventional report file name for a date range,
// e.g. SalesReport_20260801_20260831.csv.
func ExportFileName(start, end time.Time) string {
	return fmt.Sprintf("SalesReport_%s_%s.csv", start.Format("20060102"), end.Format("20060102"))
}
