// Command seed-db fills the database with demo draft orders so the pay
// endpoint can be exercised manually.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
	"github.com/soldera/orderpay/internal/repository"
)

type demoProduct struct {
	id    string
	name  string
	price string
}

var demoProducts = []demoProduct{
	{"11111111-1111-1111-1111-111111111111", "Waffle with Berries", "6.50"},
	{"22222222-2222-2222-2222-222222222222", "Vanilla Bean Creme Brulee", "7.00"},
	{"33333333-3333-3333-3333-333333333333", "Macaron Mix of Five", "8.00"},
	{"44444444-4444-4444-4444-444444444444", "Classic Tiramisu", "5.50"},
	{"55555555-5555-5555-5555-555555555555", "Pistachio Baklava", "4.00"},
}

func main() {
	var (
		databaseURL string
		count       int
		workers     int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.IntVar(&count, "count", 20, "number of demo orders to create")
	flag.IntVar(&workers, "workers", 4, "concurrent seed workers")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, count, workers); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully", slog.Int("orders", count))
}

func run(ctx context.Context, databaseURL string, count, workers int) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := repository.NewOrderRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range count {
		g.Go(func() error {
			o, err := demoOrder()
			if err != nil {
				return errors.Wrapf(err, "build demo order %d", i)
			}
			if err := repo.Save(gctx, o); err != nil {
				return errors.Wrapf(err, "save demo order %d", i)
			}
			slog.Info("seeded order", slog.String("id", o.ID()), slog.Int("lines", len(o.Lines())))
			return nil
		})
	}

	return g.Wait()
}

// demoOrder builds a draft order with 1-3 random lines.
func demoOrder() (*order.Order, error) {
	o := order.New(randomCustomer())

	lineCount := 1 + rand.Intn(3)
	for range lineCount {
		p := demoProducts[rand.Intn(len(demoProducts))]
		price, err := money.FromString(p.price, "USD")
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(p.id, p.name, price, 1+rand.Intn(4))
		if err != nil {
			return nil, err
		}
		if err := o.AddLine(line); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func randomCustomer() string {
	customers := []string{
		"aaaaaaaa-0000-0000-0000-000000000001",
		"aaaaaaaa-0000-0000-0000-000000000002",
		"aaaaaaaa-0000-0000-0000-000000000003",
	}
	return customers[rand.Intn(len(customers))]
}
