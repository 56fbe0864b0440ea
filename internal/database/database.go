package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/smartresult/backend/internal/config"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Silent
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	log.Info().Str("driver", cfg.Database.Driver).Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).Msg("connecting to database")

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Msg("database connection successful")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	log.Info().Msg("running migrations")

	err := db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.ExamType{},
		&models.Exam{},
		&models.Subject{},
		&models.Result{},
		&models.Notification{},
		&models.AuditLog{},
		&models.RefreshToken{},
	)
	if err != nil {
		return err
	}

	// Add performance indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_admins_email ON admins(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_students_admin ON students(admin_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_results_student ON results(student_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_results_exam ON results(exam_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_exams_published ON exams(is_published)")

	return nil
}
