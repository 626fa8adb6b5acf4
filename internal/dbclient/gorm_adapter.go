package dbclient

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"jiraupdate-go/configs/config"
	"jiraupdate-go/internal/cstmerr"
	"jiraupdate-go/internal/shared"
)

// GORMAdapter implements the DBClient interface using the GORM library.
type GORMAdapter struct {
	db     *gorm.DB
	config *config.DatabaseConfig
}

// NewGORMAdapter creates a new GORMAdapter. Connect must be called before use.
func NewGORMAdapter(cfg *config.DatabaseConfig) *GORMAdapter {
	return &GORMAdapter{
		config: cfg,
	}
}

// gormLogWriter routes GORM's slow query / error output into zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// BuildDSN assembles the postgres connection string from the config.
func BuildDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
}

func (ga *GORMAdapter) Connect(ctx context.Context) error {
	if ga.db != nil {
		sqlDB, err := ga.db.DB()
		if err == nil {
			if err = sqlDB.PingContext(ctx); err == nil {
				return nil
			}
		}
	}

	gormLogger := glogger.New(gormLogWriter{}, glogger.Config{
		SlowThreshold: time.Second, LogLevel: glogger.Warn, IgnoreRecordNotFoundError: true, Colorful: false,
	})

	var err error
	ga.db, err = gorm.Open(postgres.Open(BuildDSN(ga.config)),
		&gorm.Config{
			Logger:  gormLogger,
			NowFunc: func() time.Time { return time.Now().UTC() },
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	if err != nil {
		return cstmerr.NewDBConnectionError("gorm.Open failed", err)
	}

	if err = ga.db.WithContext(ctx).AutoMigrate(&shared.Submission{}); err != nil {
		return cstmerr.NewDBConnectionError("failed to migrate submission model", err)
	}

	sqlDB, err := ga.db.DB()
	if err != nil {
		return cstmerr.NewDBConnectionError("failed to get underlying sql.DB from GORM", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return cstmerr.NewDBConnectionError("failed to ping database after GORM connect", err)
	}
	log.Info().Str("host", ga.config.Host).Str("db", ga.config.DBName).Msg("Connected to PostgreSQL")
	return nil
}

func (ga *GORMAdapter) Close() error {
	if ga.db != nil {
		sqlDB, _ := ga.db.DB()
		if sqlDB != nil {
			return sqlDB.Close()
		}
	}
	return nil
}

func (ga *GORMAdapter) Ping(ctx context.Context) error {
	if ga.db == nil {
		return cstmerr.NewDBError("database not connected", nil)
	}
	sqlDB, _ := ga.db.DB()
	if sqlDB == nil {
		return cstmerr.NewDBError("underlying sql.DB not available for ping", nil)
	}
	return sqlDB.PingContext(ctx)
}

func (ga *GORMAdapter) Create(ctx context.Context, model interface{}) error {
	if ga.db == nil {
		return cstmerr.NewDBError("database not connected", nil)
	}
	result := ga.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return cstmerr.NewDBQueryError("GORM Create failed", result.Error)
	}
	return nil
}

func (ga *GORMAdapter) Find(ctx context.Context, collection interface{}, conditions ...interface{}) error {
	if ga.db == nil {
		return cstmerr.NewDBError("database not connected", nil)
	}
	// An empty result set is not an error for Find; the collection stays empty.
	result := ga.db.WithContext(ctx).Find(collection, conditions...)
	if result.Error != nil {
		return cstmerr.NewDBQueryError("GORM Find failed", result.Error)
	}
	return nil
}
