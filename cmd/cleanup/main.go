package main

import (
	"time"

	"github.com/smartresult/backend/internal/config"
	"github.com/smartresult/backend/internal/database"
	"github.com/smartresult/backend/internal/logger"
	"github.com/smartresult/backend/internal/models"
)

// Purges refresh tokens that are expired or revoked. Meant to run from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	result := db.Where("expires_at < ? OR revoked = ?", time.Now(), true).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("token cleanup failed")
	}

	log.Info().Int64("purged", result.RowsAffected).Msg("refresh token cleanup completed")
}
