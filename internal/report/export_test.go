package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocerypos/backend/internal/domain"
)

func summaryFixture() []domain.Transaction {
	return []domain.Transaction{
		saleOf(1, time.Date(2026, 8, 15, 9, 30, 0, 0, time.Local),
			item(10, "Cola", 2, "1.50"), item(11, "Chips", 1, "2.00")),
		saleOf(2, time.Date(2026, 8, 16, 14, 5, 0, 0, time.Local),
			item(11, "Chips", 1, "2.00")),
	}
}

func TestWriteSalesSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSalesSummary(&buf, summaryFixture())
	require.NoError(t, err)

	want := "Transaction ID,Date,Items,SubTotal,Tax,Total\n" +
		"1,2026-08-15 09:30,2,5.00,0.25,5.25\n" +
		"2,2026-08-16 14:05,1,2.00,0.10,2.10\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSalesSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSalesSummary(&buf, nil))
	assert.Equal(t, "Transaction ID,Date,Items,SubTotal,Tax,Total\n", buf.String())
}

func TestExportSalesSummaryWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ExportFileName(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local),
	))

	require.NoError(t, ExportSalesSummary(path, summaryFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,2026-08-15 09:30,2,5.00,0.25,5.25")
	assert.Equal(t, "SalesReport_20260801_20260831.csv", filepath.Base(path))
}
