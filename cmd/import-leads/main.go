// Command import-leads loads job leads from a CSV file into the lead store
// as global, system-owned records. It is intended to be run offline, not as
// part of the main server.
//
// CSV columns: title, company, location, team, compensation, source_link,
// industry. The first row is treated as a header and skipped.
//
// Flags:
//
//	--file     path to the CSV file (required)
//	--dry-run  parse the file without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gigfrog/backend/internal/adapter/postgres"
	leadrepo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	"github.com/gigfrog/backend/internal/app"
	"github.com/gigfrog/backend/internal/config"
	"github.com/gigfrog/backend/internal/domain"
)

func main() {
	fileFlag := flag.String("file", "", "path to the CSV file")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to DB")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	leads, err := parseCSV(*fileFlag)
	if err != nil {
		logger.Error("parse csv", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("csv parsed",
		slog.String("file", *fileFlag),
		slog.Int("leads", len(leads)),
	)

	if *dryRunFlag {
		logger.Info("dry run, nothing written")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := leadrepo.New(pool)

	imported := 0
	for _, lead := range leads {
		if _, err := repo.Create(ctx, lead); err != nil {
			logger.Error("create lead",
				slog.String("title", lead.Title),
				slog.String("company", lead.Company),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		imported++
	}

	logger.Info("import finished", slog.Int("imported", imported))
}

func parseCSV(path string) ([]domain.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 7

	// Header row.
	if _, err := r.Read(); err != nil {
		return nil, err
	}

	var leads []domain.Lead
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		lead := domain.Lead{
			Title:      strings.TrimSpace(record[0]),
			Company:    strings.TrimSpace(record[1]),
			Location:   strings.TrimSpace(record[2]),
			Team:       strings.TrimSpace(record[3]),
			SourceLink: strings.TrimSpace(record[5]),
			Industry:   strings.TrimSpace(record[6]),
			IsGlobal:   true,
			CreatedBy:  domain.CreatorSystem,
		}
		lead.Compensation.Raw = strings.TrimSpace(record[4])

		if lead.Title == "" || lead.Company == "" {
			continue
		}

		leads = append(leads, lead)
	}

	return leads, nil
}
