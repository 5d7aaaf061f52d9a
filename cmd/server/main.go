package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeanmendescs/marketplace/internal/adapter/catalog"
	"github.com/jeanmendescs/marketplace/internal/adapter/handler"
	"github.com/jeanmendescs/marketplace/internal/adapter/notify"
	"github.com/jeanmendescs/marketplace/internal/adapter/storage"
	"github.com/jeanmendescs/marketplace/internal/config"
	"github.com/jeanmendescs/marketplace/internal/core/checkout"
	"github.com/jeanmendescs/marketplace/internal/core/service"
	"github.com/jeanmendescs/marketplace/internal/port"
)

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Marketplace storefront core: catalog, cart, and checkout",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Durable client storage
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	cartStorage := storage.NewRedisAdapter(rdb, cfg.Redis.CartKey)

	// Catalog: loaded once, immutable afterwards
	cat, err := buildCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("products", len(cat.Products())))

	notifier := notify.NewLogNotifier(logger)
	navigator := notify.NewLogNavigator(logger)

	cartSvc := service.NewCartService(cartStorage, cat, notifier, logger)
	cartSvc.Restore(ctx)
	logger.Info("cart restored", zap.Int("items", cartSvc.TotalQuantity()))

	checkoutSvc := service.NewCheckoutService(cartSvc, checkout.NewValidator(), navigator, notifier, logger)

	// Redirect off the checkout page whenever the cart empties outside a
	// submit, mirroring the storefront's guard.
	cartSvc.Subscribe(func(items []int) {
		checkoutSvc.GuardCheckoutPage(navigator.Current())
	})

	httpHandler := handler.NewHTTPHandler(cat, cartSvc, checkoutSvc)
	router := mux.NewRouter()
	httpHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	rdb.Close()
	logger.Info("connections closed")
	return nil
}

func buildCatalog(ctx context.Context, cfg config.Config) (port.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceMySQL:
		db, err := sql.Open("mysql", cfg.Catalog.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect mysql: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping mysql: %w", err)
		}

		products, err := catalog.NewMySQLAdapter(db).LoadProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return catalog.FromProducts(products), nil
	default:
		return catalog.NewStatic()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
