package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"athlos/gym-app/internal/config"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/service"
	"athlos/gym-app/pkg/logger"
)

// Loads an exercise catalog JSON array (free-exercise-db layout) and upserts
// it by exercise name, so re-running against a newer dump refreshes entries
// in place.
func main() {
	file := flag.String("file", "exercises.json", "path to the exercise catalog JSON array")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := zap.S()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalw("could not load config", "error", err)
	}

	db, err := gormrepo.ConnectDB(cfg.Database.DSN)
	if err != nil {
		log.Fatalw("could not connect to database", "error", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalw("could not migrate database schema", "error", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalw("could not read catalog file", "file", *file, "error", err)
	}
	var entries []service.ExerciseInput
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalw("could not parse catalog file", "file", *file, "error", err)
	}

	exerciseService := service.NewExerciseService(gormrepo.NewExerciseRepository(db), nil)
	result, err := exerciseService.Import(context.Background(), entries)
	if err != nil {
		log.Fatalw("import failed", "error", err)
	}
	log.Infow("import finished",
		"entries", len(entries),
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
	)
}
