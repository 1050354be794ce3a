package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

func NewMongoClient(config *MongoConfig) (*Client, error) {
	return NewClient(config)
}

var Module = fx.Options(
	fx.Provide(NewMongoClient),
	fx.Provide(NewCollectionManager),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			// The audit trail is non-critical: a missing MongoDB must not
			// prevent the catalog API from serving.
			if err := client.Ping(timeoutCtx); err != nil {
				fmt.Printf("[MONGODB] MongoDB unavailable, audit trail disabled: %v\n", err)
				return nil
			}

			fmt.Printf("[MONGODB] MongoDB connected\n")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
