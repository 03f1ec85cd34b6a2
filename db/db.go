package db

import (
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open connects the sqlite log store and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to open sqlite database", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	err = gdb.AutoMigrate(
		&TurnModel{},
		&VideoQuestionModel{},
		&AptitudeQuestionModel{},
		&AssessmentModel{},
	)
	if err != nil {
		logger.Error("Failed to migrate schema", zap.Error(err))
		return nil, err
	}

	return gdb, nil
}
