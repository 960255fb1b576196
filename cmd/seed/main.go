package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"catalog-admin/internal/config"
	"catalog-admin/internal/database"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/seed"
	"catalog-admin/internal/service"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:  "seed",
		Usage: "Reset the catalog to the demo data set",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "fake",
				Usage: "number of generated products to add after the demo data",
			},
			&cli.BoolFlag{
				Name:  "keep",
				Usage: "do not clear existing data first",
			},
			&cli.BoolFlag{
				Name:  "no-sample",
				Usage: "skip the demo categories, brands and products",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg := config.Load()

	zl, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zl.Sync()

	store, err := database.Open(ctx, cfg.Database, zl)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	// Seeding bypasses the reference policy; sample ids always resolve.
	services := service.New(store, false, zl)
	seeder := seed.New(services, zl, rand.New(rand.NewSource(time.Now().UnixNano())))

	if !c.Bool("keep") {
		if err := seeder.Clear(ctx); err != nil {
			return err
		}
	}

	if !c.Bool("no-sample") {
		summary, err := seeder.Sample(ctx)
		if err != nil {
			return err
		}
		for i, p := range summary.Products {
			zl.Info("Sample product", zap.Int("index", i+1), zap.String("name", p.Name), zap.String("id", p.ID))
		}
	}

	if n := c.Int("fake"); n > 0 {
		if _, err := seeder.Fake(ctx, int(n)); err != nil {
			return err
		}
	}

	return nil
}
