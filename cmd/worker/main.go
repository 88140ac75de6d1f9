package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/database"
	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/generator"
	"github.com/vacantvectors/postcraft/internal/orchestration"
)

func main() {
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	llm, err := generator.NewOpenAILLM(cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	temporalClient, err := orchestration.InitTemporalClient(cfg.TemporalHostPort)
	if err != nil {
		logger.Fatal("failed to connect to temporal", zap.Error(err))
	}
	defer orchestration.CloseTemporalClient()

	store := dataset.NewStore(db, logger)
	processor := dataset.NewProcessor(llm, cfg.LLM, logger)
	activities := orchestration.NewActivities(store, processor, logger)

	logger.Info("dataset worker starting", zap.String("task_queue", orchestration.TaskQueue))
	if err := orchestration.RunWorker(temporalClient, activities); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
