package repo

import (
	"StudyHub/internal/model"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Capabilities описывает возможности хранилища, определённые один раз при старте.
type Capabilities struct {
	// CardPerformance — таблица card_performances существует.
	CardPerformance bool
}

// InitDB открывает соединение: postgres для DSN вида postgres://… или host=…,
// иначе SQLite (modernc.org/sqlite) по пути/URI файла.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}
	cfg := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	}

	if isPostgresDSN(dsn) {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}

	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite не любит параллельных писателей; заодно :memory: живёт в одном соединении.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Migrate создаёт таблицы. withCardStats=false оставляет хранилище без
// card_performances, как в инсталляциях до появления пошаговой статистики.
func Migrate(db *gorm.DB, withCardStats bool) error {
	models := []any{
		&model.User{},
		&model.Subject{},
		&model.Card{},
		&model.ChecklistItem{},
		&model.SubjectShare{},
		&model.StudySession{},
		&model.ChecklistEntry{},
	}
	if withCardStats {
		models = append(models, &model.CardPerformance{})
	}
	return db.AutoMigrate(models...)
}

// ProbeCapabilities проверяет схему. Вызывается один раз при старте процесса.
func ProbeCapabilities(db *gorm.DB) Capabilities {
	return Capabilities{
		CardPerformance: db.Migrator().HasTable(&model.CardPerformance{}),
	}
}

// Close закрывает пул соединений.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
