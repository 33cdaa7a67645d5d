package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// DB the shared connection, set by Initialize
	DB   *gorm.DB
	once sync.Once
)

// Initialize opens the PostgreSQL connection and configures the pool
func Initialize(cfg *config.Config) error {
	var initErr error
	once.Do(func() {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode)

		gormLogLevel := gormlogger.Warn
		if cfg.Server.Mode == "debug" {
			gormLogLevel = gormlogger.Info
		}

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormLogLevel),
		})
		if err != nil {
			initErr = fmt.Errorf("failed to connect to database: %v", err)
			return
		}

		sqlDB, err := db.DB()
		if err != nil {
			initErr = fmt.Errorf("failed to get database instance: %v", err)
			return
		}
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Hour)

		DB = db
		logger.GetLogger().Info("Database connection established")
	})
	return initErr
}

// GetDB returns the shared connection
func GetDB() *gorm.DB {
	return DB
}

// SetDB overrides the shared connection, used by tests
func SetDB(db *gorm.DB) {
	DB = db
}

// Close closes the underlying connection pool
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
