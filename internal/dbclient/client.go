package dbclient

import (
	"context"
	"time"

	"jiraupdate-go/configs/config"
	"jiraupdate-go/internal/cstmerr"
)

// DBClient defines the database operations the audit store needs.
type DBClient interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Create inserts a new record into the database.
	// 'model' is a pointer to the struct to be created.
	Create(ctx context.Context, model interface{}) error

	// Find retrieves a collection of models matching the given conditions.
	// 'collection' is a pointer to a slice of structs; 'conditions' can be
	// a struct to build WHERE conditions, or a query string + args.
	Find(ctx context.Context, collection interface{}, conditions ...interface{}) error
}

// NewDBClient is a factory function that returns a connected DBClient
// implementation for the given adapter type.
func NewDBClient(dbConfig *config.DatabaseConfig, dbType string) (DBClient, error) {
	if dbConfig == nil {
		return nil, cstmerr.NewDBError("database configuration is nil", nil)
	}

	var adapter DBClient
	switch dbType {
	case "gorm":
		adapter = NewGORMAdapter(dbConfig)
	default:
		return nil, cstmerr.NewDBConnectionError("unknown db type "+dbType, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) // Connection timeout
	defer cancel()

	if err := adapter.Connect(ctx); err != nil {
		// The adapter's Connect method wraps errors appropriately.
		return nil, err
	}
	return adapter, nil
}
