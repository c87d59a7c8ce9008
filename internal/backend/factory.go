package backend

import (
	"context"
	"fmt"

	"spendbook/internal/events"
	"spendbook/internal/ledger"
	"spendbook/internal/log"
	"spendbook/internal/storage"
	"spendbook/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateLedger implements Factory.CreateLedger
func (f *DefaultFactory) CreateLedger(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	var store storage.Store
	switch config.Type {
	case SQLiteBackend:
		sqliteStore, err := storage.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		store = sqliteStore
		f.logger.Info("Initialized SQLite store", "db_path", config.SQLiteDBPath)
	case MemoryBackend:
		store = memory.New()
		f.logger.Info("Initialized in-memory store")
	}

	// Broker failures must not keep the ledger from starting.
	var publisher ledger.Publisher
	var eventsClient *events.Client
	if config.AMQPURL != "" {
		client, err := events.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		} else {
			eventsClient = client
			publisher = client
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	ldg := ledger.New(store, publisher, f.logger.With(log.FieldComponent, log.ComponentLedger).Logger)
	ldg.Load(ctx)

	cleanup := func() error {
		if eventsClient != nil {
			if err := eventsClient.Close(); err != nil {
				f.logger.Warn("Failed to close AMQP client", log.FieldError, err)
			}
		}
		return store.Close()
	}

	return &Result{
		Ledger:  ldg,
		Cleanup: cleanup,
	}, nil
}
