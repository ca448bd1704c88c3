package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"grocerypos/backend/internal/config"
	"grocerypos/backend/internal/domain"
	"grocerypos/backend/internal/importer"
	"grocerypos/backend/internal/report"
	"grocerypos/backend/internal/store"
)

const dateLayout = "2006-01-02"

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("cannot open data directory")
	}

	if err := run(os.Args[1], os.Args[2:], st, cfg); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(command string, args []string, st *store.Store, cfg config.Config) error {
	engine := report.NewEngine(st)

	switch command {
	case "summary":
		if cfg.Watch {
			return runWatch(st, engine)
		}
		return runSummary(st, engine)
	case "low-stock":
		return runLowStock(st, engine)
	case "products":
		return runProducts(st)
	case "sale":
		return runSale(st, args)
	case "recent":
		return runRecent(engine, args)
	case "export":
		return runExport(engine, args)
	case "import-products":
		return runImport(args, importer.New(st).ImportProducts)
	case "import-categories":
		return runImport(args, importer.New(st).ImportCategories)
	case "watch":
		return runWatch(st, engine)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runSummary(st *store.Store, engine *report.Engine) error {
	settings := st.Settings()
	fmt.Printf("%s\n", settings.StoreName)
	fmt.Printf("  today: %s%s across %d transactions\n",
		settings.CurrencySymbol, engine.TodaySales().StringFixed(2), engine.TodayTransactionCount())
	fmt.Printf("  products: %d, low stock: %d\n", len(st.Products()), len(engine.LowStockProducts()))
	return nil
}

func runLowStock(st *store.Store, engine *report.Engine) error {
	low := engine.LowStockProducts()
	if len(low) == 0 {
		fmt.Println("no products below the low-stock threshold")
		return nil
	}
	for _, p := range low {
		fmt.Printf("%4d  %-30s %3d %s left (%s)\n", p.ID, p.Name, p.Quantity, p.Unit, p.CategoryName)
	}
	return nil
}

func runProducts(st *store.Store) error {
	symbol := st.Settings().CurrencySymbol
	for _, p := range st.Products() {
		marker := " "
		if p.IsLowStock {
			marker = "!"
		}
		fmt.Printf("%4d %s %-30s %s%s  %d %s  %s\n",
			p.ID, marker, p.Name, symbol, p.Price.StringFixed(2), p.Quantity, p.Unit, p.CategoryName)
	}
	return nil
}

func runSale(st *store.Store, args []string) error {
	lines, err := parseSaleLines(args)
	if err != nil {
		return err
	}

	tx, err := st.RecordSale(lines)
	if err != nil {
		return err
	}

	symbol := st.Settings().CurrencySymbol
	fmt.Printf("recorded transaction %d\n", tx.ID)
	for _, item := range tx.Items {
		fmt.Printf("  %dx %-30s %s%s\n", item.Quantity, item.ProductName, symbol, item.TotalPrice.StringFixed(2))
	}
	fmt.Printf("  subtotal %s%s  tax %s%s  total %s%s\n",
		symbol, tx.SubTotal.StringFixed(2),
		symbol, tx.TaxAmount.StringFixed(2),
		symbol, tx.TotalAmount.StringFixed(2))
	return nil
}

func runRecent(engine *report.Engine, args []string) error {
	fs := flag.NewFlagSet("recent", flag.ContinueOnError)
	n := fs.Int("n", 10, "number of transactions to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, tx := range engine.RecentTransactions(*n) {
		fmt.Printf("%4d  %s  %2d items  %s\n",
			tx.ID, tx.Date.Format("2006-01-02 15:04"), len(tx.Items), tx.TotalAmount.StringFixed(2))
	}
	return nil
}

func runExport(engine *report.Engine, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	startArg := fs.String("start", "", "start date (YYYY-MM-DD), default 30 days ago")
	endArg := fs.String("end", "", "end date (YYYY-MM-DD), default today")
	out := fs.String("out", "", "output file, default SalesReport_<start>_<end>.csv")
	if err := fs.Parse(args); err != nil {
		return err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	var err error
	if *startArg != "" {
		if start, err = time.ParseInLocation(dateLayout, *startArg, time.Local); err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
	}
	if *endArg != "" {
		if end, err = time.ParseInLocation(dateLayout, *endArg, time.Local); err != nil {
			return fmt.Errorf("invalid -end: %w", err)
		}
	}

	path := *out
	if path == "" {
		path = report.ExportFileName(start, end)
	}

	transactions := engine.SalesInRange(start, end)
	if err := report.ExportSalesSummary(path, transactions); err != nil {
		return err
	}
	fmt.Printf("wrote %d transactions to %s\n", len(transactions), path)
	return nil
}

func runImport(args []string, importFn func(string) domain.ImportResult) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one csv file argument")
	}

	result := importFn(args[0])
	fmt.Printf("imported %d, skipped %d\n", result.Imported, result.Skipped)
	for _, msg := range result.Errors {
		fmt.Printf("  %s\n", msg)
	}
	if result.Imported == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("nothing imported")
	}
	return nil
}

// runWatch tails the data directory, reloading and reprinting the summary on
// every change until interrupted.
func runWatch(st *store.Store, engine *report.Engine) error {
	cancel := st.Subscribe(func() {
		if err := runSummary(st, engine); err != nil {
			log.Warn().Err(err).Msg("summary failed")
		}
	})
	defer cancel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("dir", st.Dir()).Msg("watching data directory")
	if err := runSummary(st, engine); err != nil {
		return err
	}
	return st.Watch(ctx)
}

// parseSaleLines parses ID:QTY or ID:QTY:PRICE arguments, e.g. "3:2" for two
// of product 3 and "3:2:1.25" to override the unit price.
func parseSaleLines(args []string) ([]domain.SaleLine, error) {
	lines := make([]domain.SaleLine, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, fmt.Errorf("invalid sale item %q, expected ID:QTY or ID:QTY:PRICE", arg)
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid product id in %q", arg)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q", arg)
		}

		line := domain.SaleLine{ProductID: id, Quantity: qty}
		if len(parts) == 3 {
			price, err := parseUnitPrice(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid price in %q: %w", arg, err)
			}
			line.UnitPrice = price
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseUnitPrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("price cannot be negative")
	}
	return price, nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(parsed)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: posctl <command> [args]

commands:
  summary                         store name, today's sales, stock overview
  products                        list products with derived category and stock flags
  low-stock                       products below the configured threshold
  sale ID:QTY [ID:QTY:PRICE ...]  record a sale
  recent [-n N]                   newest transactions
  export [-start D] [-end D] [-out F]
                                  write a sales summary CSV for a date range
  import-products <file.csv>      import products, creating categories as needed
  import-categories <file.csv>    import categories, skipping duplicates
  watch                           reload on external data file changes

environment: POS_DATA_DIR, POS_LOG_LEVEL, POS_WATCH (summary keeps watching)`)
}
