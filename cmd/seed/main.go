package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/biocomp/qbank-backend/internal/config"
	"github.com/biocomp/qbank-backend/internal/database"
	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/repository"
	"github.com/biocomp/qbank-backend/internal/seed"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "seeds/reference.yaml", "Path to the seed YAML file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read seed file")
	}
	file, err := seed.Parse(data)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Invalid seed file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	seeder := seed.NewSeeder(
		repository.NewQuestionTypeRepository(pool),
		repository.NewSourceRepository(pool),
		repository.NewTagRepository(pool),
		log,
	)

	res, err := seeder.Apply(ctx, file)
	if err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		pool.Close()
		os.Exit(1)
	}

	log.Info().
		Int("question_types", res.QuestionTypes).
		Int("sources", res.Sources).
		Int("tags", res.Tags).
		Str("file", path).
		Msg("Seed applied")
}
