// Command initdb creates the schema, reloads the catalog from the CSV source and makes sure
// the admin account exists.
//
//	go run ./cmd/initdb [-keep] [-source data/Cereal.csv]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/DennisRussell0/cereal-api/internal/config"
	"github.com/DennisRussell0/cereal-api/internal/images"
	"github.com/DennisRussell0/cereal-api/internal/importer"
	"github.com/DennisRussell0/cereal-api/internal/logging"
	"github.com/DennisRussell0/cereal-api/internal/migrations"
	"github.com/DennisRussell0/cereal-api/internal/repo"
	"github.com/DennisRussell0/cereal-api/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	keep := flag.Bool("keep", false, "keep existing catalog rows instead of clearing them")
	source := flag.String("source", "", "CSV source (default IMPORT_SOURCE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Import.Source = *source
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *keep, log); err != nil {
		log.WithError(err).Error("initdb failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, keep bool, log *logrus.Logger) error {
	pool, db, err := repo.OpenPostgres(ctx, cfg.PG.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}

	cereals := repo.NewPGCerealRepo(db)
	if !keep {
		n, err := cereals.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		log.WithField("rows", n).Info("catalog cleared")
	}

	idx, err := images.LoadIndex(cfg.Catalog.ImageDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		log.WithField("dir", cfg.Catalog.ImageDir).Warn("image directory missing, importing without images")
	}
	res, err := importer.New(cereals, idx, log).Run(ctx, cfg.Import.Source)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	log.WithFields(logrus.Fields{
		"source":   cfg.Import.Source,
		"imported": res.Imported,
		"skipped":  res.Skipped,
	}).Info("catalog imported")

	users := service.NewUserService(repo.NewPGUserRepo(db))
	_, created, err := users.EnsureUser(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		fmt.Println("Admin user created!")
	} else {
		fmt.Println("Admin user already exists.")
	}
	return nil
}
