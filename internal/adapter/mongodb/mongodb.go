package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

type Options struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// A CatalogDB holds the process-wide connection to the products
// collection. The collection handle is created once and never replaced.
type CatalogDB struct {
	client   *mongo.Client
	products *mongo.Collection
}

func NewCatalogDB(ctx context.Context, opts Options) (CatalogDB, error) {
	const op = "NewCatalogDB"
	log := slog.With("op", op)

	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return CatalogDB{}, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return CatalogDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	products := client.Database(opts.Database).Collection(opts.Collection)
	log.Info(
		"database is available",
		"database", opts.Database, "collection", opts.Collection,
	)
	return CatalogDB{client, products}, nil
}

func (db CatalogDB) Products() *mongo.Collection {
	return db.products
}

func (db CatalogDB) Close(ctx context.Context) {
	const op = "CatalogDB.Close"
	log := slog.With("op", op)

	log.Info("closing database connection...")

	if err := db.client.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect", "err", err)
		return
	}
	log.Info("database connection is closed")
}
