package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine"
)

// ErrUnsupportedAdapter is returned for an ADAPTER_TYPE other than pgx.pool, sql.db, or sqlx.db.
var ErrUnsupportedAdapter = errors.New("unsupported adapter type")

// OpenedStore is a store together with the function that closes its connections.
type OpenedStore struct {
	Store *postgresengine.Store
	Close func()
}

// OpenStore connects with the configured driver and builds the store, with the replica when one is configured.
func OpenStore(ctx context.Context, cfg DatabaseConfig, adapterType string, options ...postgresengine.Option) (OpenedStore, error) {
	switch adapterType {
	case AdapterPGXPool, "":
		return openPGXStore(ctx, cfg, options)
	case AdapterSQLDB:
		return openSQLDBStore(ctx, cfg, options)
	case AdapterSQLXDB:
		return openSQLXStore(ctx, cfg, options)
	default:
		return OpenedStore{}, fmt.Errorf("%w: %s", ErrUnsupportedAdapter, adapterType)
	}
}

func openPGXStore(ctx context.Context, cfg DatabaseConfig, options []postgresengine.Option) (OpenedStore, error) {
	primary, err := PostgresPGXPool(ctx, cfg.PrimaryDSN())
	if err != nil {
		return OpenedStore{}, err
	}

	if !cfg.HasReplica() {
		store, err := postgresengine.NewStoreFromPGXPool(primary, options...)
		if err != nil {
			primary.Close()
			return OpenedStore{}, err
		}

		return OpenedStore{Store: store, Close: primary.Close}, nil
	}

	replica, err := PostgresPGXPool(ctx, cfg.ReplicaDSN())
	if err != nil {
		primary.Close()
		return OpenedStore{}, err
	}

	closeAll := func() {
		replica.Close()
		primary.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return OpenedStore{}, err
	}

	return OpenedStore{Store: store, Close: closeAll}, nil
}

func openSQLDBStore(ctx context.Context, cfg DatabaseConfig, options []postgresengine.Option) (OpenedStore, error) {
	primary, err := PostgresSQLDB(ctx, cfg.PrimaryDSN())
	if err != nil {
		return OpenedStore{}, err
	}

	if !cfg.HasReplica() {
		store, err := postgresengine.NewStoreFromSQLDB(primary, options...)
		if err != nil {
			_ = primary.Close()
			return OpenedStore{}, err
		}

		return OpenedStore{Store: store, Close: func() { _ = primary.Close() }}, nil
	}

	replica, err := PostgresSQLDB(ctx, cfg.ReplicaDSN())
	if err != nil {
		_ = primary.Close()
		return OpenedStore{}, err
	}

	closeAll := func() {
		_ = replica.Close()
		_ = primary.Close()
	}

	store, err := postgresengine.NewStoreFromSQLDBAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return OpenedStore{}, err
	}

	return OpenedStore{Store: store, Close: closeAll}, nil
}

func openSQLXStore(ctx context.Context, cfg DatabaseConfig, options []postgresengine.Option) (OpenedStore, error) {
	primary, err := PostgresSQLX(ctx, cfg.PrimaryDSN())
	if err != nil {
		return OpenedStore{}, err
	}

	if !cfg.HasReplica() {
		store, err := postgresengine.NewStoreFromSQLX(primary, options...)
		if err != nil {
			_ = primary.Close()
			return OpenedStore{}, err
		}

		return OpenedStore{Store: store, Close: func() { _ = primary.Close() }}, nil
	}

	replica, err := PostgresSQLX(ctx, cfg.ReplicaDSN())
	if err != nil {
		_ = primary.Close()
		return OpenedStore{}, err
	}

	closeAll := func() {
		_ = replica.Close()
		_ = primary.Close()
	}

	store, err := postgresengine.NewStoreFromSQLXAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return OpenedStore{}, err
	}

	return OpenedStore{Store: store, Close: closeAll}, nil
}
