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

	"github.com/MarcoBarzola22/carta-restaurante-app/docs"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/auth"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/checkout"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/queue"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/ratelimiter"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/service"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/store/mongo"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config         config
	logger         *zap.SugaredLogger
	rateLimiter    ratelimiter.Limiter
	storage        *mongo.Storage
	broker         queue.Broker
	authenticator  *auth.Authenticator
	carts          *cart.Manager
	catalogService *service.CatalogService
	productService *service.ProductService
	orderService   *service.OrderService
	importService  *service.ImportService
	checkout       *checkout.Orchestrator
	statusWorker   *worker.ProductStatusWorker
	orderWorker    *worker.OrderEventsWorker
	importWorker   *worker.CatalogImportWorker
}

type config struct {
	addr            string
	env             string
	apiURL          string
	rateLimiter     ratelimiter.Config
	mongo           mongoConfig
	rabbitMQ        rabbitMQConfig
	auth            authConfig
	googleCreds     string
	whatsappPhone   string
	cartTTL         time.Duration
	checkoutTimeout time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	PrefetchCount int
}

type authConfig struct {
	username string
	password string
	token    string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/auth/login", app.loginHandler)

		// public storefront
		r.Get("/products", app.listProductsHandler)
		r.Get("/categories", app.listCategoriesHandler)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", app.getCartHandler)
			r.Delete("/", app.clearCartHandler)
			r.Post("/items", app.addCartItemHandler)
			r.Patch("/items/{product_id}", app.updateCartItemHandler)
			r.Delete("/items/{product_id}", app.removeCartItemHandler)
		})

		r.Post("/checkout", app.checkoutHandler)

		// admin
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Post("/products", app.createProductHandler)
			r.Put("/products/{product_id}", app.updateProductHandler)
			r.Delete("/products/{product_id}", app.deleteProductHandler)
			r.Patch("/products/{product_id}/status", app.updateProductStatusHandler)
			r.Get("/products/{product_id}/audit", app.getProductAuditHandler)

			r.Post("/categories", app.createCategoryHandler)
			r.Put("/categories/{category_id}", app.updateCategoryHandler)
			r.Delete("/categories/{category_id}", app.deleteCategoryHandler)

			r.Get("/orders", app.listOrdersHandler)

			r.Post("/catalog/import", app.createImportTaskHandler)
			r.Get("/catalog/import/{task_id}", app.getImportTaskHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.unauthorizedResponse(w, r, errors.New("authorization header is missing"))
			return
		}

		const prefix = "Bearer "
		if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
			app.unauthorizedResponse(w, r, errors.New("authorization header is malformed"))
			return
		}

		if !app.authenticator.ValidToken(authHeader[len(prefix):]) {
			app.unauthorizedResponse(w, r, errors.New("invalid token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Carta Digital"
	docs.SwaggerInfo.Description = "API for the Carta Digital restaurant storefront and back office"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.statusWorker != nil {
		if err := app.statusWorker.Start(); err != nil {
			return fmt.Errorf("failed to start product status worker: %w", err)
		}
	}
	if app.orderWorker != nil {
		if err := app.orderWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order events worker: %w", err)
		}
	}
	if app.importWorker != nil {
		if err := app.importWorker.Start(); err != nil {
			return fmt.Errorf("failed to start catalog import worker: %w", err)
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

		if app.statusWorker != nil {
			app.statusWorker.Stop()
		}
		if app.orderWorker != nil {
			app.orderWorker.Stop()
		}
		if app.importWorker != nil {
			app.importWorker.Stop()
		}

		app.carts.Stop()

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

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

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
