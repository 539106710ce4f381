package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Open makes the single startup connection attempt. Any failure is logged and
// yields an unavailable gateway; there is no reconnect. The returned close
// func is always safe to call.
func Open(ctx context.Context, uri, name string, timeout time.Duration) (*Gateway, func(context.Context) error) {
	noop := func(context.Context) error { return nil }
	if uri == "" || name == "" {
		logger.Warnf("DATABASE_URL/DATABASE_NAME not set; persistence disabled")
		return Unavailable(), noop
	}
	client, err := ConnectMongo(ctx, uri, timeout)
	if err != nil {
		logger.Warnf("could not connect to MongoDB, persistence disabled: %v", err)
		return Unavailable(), noop
	}
	logger.Infof("connected to MongoDB database %q", name)
	return NewGateway(NewMongoBackend(client.Database(name))), client.Disconnect
}
