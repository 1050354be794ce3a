package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/app"
)

func main() {
	fx.New(
		app.AppModule,
		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Println("Dental Suite API starting...")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Dental Suite API stopping...")
					return nil
				},
			})
		}),
	).Run()
}
