package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/eventstore"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/queue"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/ratelimiter"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/service"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/store/mongo"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
	storage     *mongo.Storage
	broker      queue.Broker
	events      *eventstore.Store
	syncService *service.SyncService
	menuWorker  *worker.MenuSyncWorker
	orderWorker *worker.OrderPullWorker
}

type config struct {
	addr        string
	env         string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	eventDir    string
	eventMaxGB  int
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/restaurants/{restaurant_id}", func(r chi.Router) {
			r.Get("/pos/config", app.getConfigHandler)
			r.Put("/pos/config", app.putConfigHandler)
			r.Delete("/pos/config", app.deleteConfigHandler)
			r.Post("/pos/test", app.testConnectionHandler)

			r.Post("/menu/sync", app.createMenuSyncHandler)
			r.Get("/menu", app.getMenuHandler)
			r.Patch("/menu/items/{item_id}", app.pushMenuItemHandler)

			r.Post("/orders/pull", app.createOrderPullHandler)
			r.Get("/orders", app.listOrdersHandler)
			r.Post("/orders", app.pushOrderHandler)

			r.Get("/events", app.listEventsHandler)
		})

		r.Post("/webhooks/{provider}/{restaurant_id}", app.webhookHandler)
	})

	return r
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			allowed, retryAfter := app.rateLimiter.Allow(r.RemoteAddr)
			if !allowed {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	// workers
	if app.menuWorker != nil {
		if err := app.menuWorker.Start(); err != nil {
			return fmt.Errorf("failed to start menu sync worker: %w", err)
		}
	}
	if app.orderWorker != nil {
		if err := app.orderWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order pull worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.menuWorker != nil {
			app.menuWorker.Stop()
		}
		if app.orderWorker != nil {
			app.orderWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		if app.events != nil {
			if err := app.events.Close(); err != nil {
				app.logger.Errorw("error closing event store", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
