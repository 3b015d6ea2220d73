package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketplace/config"
	"marketplace/handler"
	"marketplace/payment"
	"marketplace/service"
	"marketplace/store"
)

var (
	logger   *zap.Logger
	cfgPath  string
	debugLog bool
)

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Multi-vendor marketplace backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if debugLog {
			zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if cfg.Seed {
			if err := store.Seed(st); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			logger.Info("seeded demo data")
		}

		notify := service.LogNotifier{Log: logger}
		auth := service.NewAuthService(st, notify)
		catalog := service.NewCatalogService(st)
		cart := service.NewCartService(st, notify)
		orders := service.NewOrderService(st)
		delay := cfg.Payment.DelayDuration()
		checkout := service.NewCheckoutService(st, cart, notify,
			payment.NewPaystack(delay),
			payment.NewFlutterwave(delay),
		)

		h := handler.New(auth, catalog, cart, checkout, orders, logger)
		r := mux.NewRouter()
		h.RegisterRoutes(r)

		logger.Info("server running", zap.String("listen", cfg.Listen))
		return http.ListenAndServe(cfg.Listen, r)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate empty collections with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := store.Seed(st); err != nil {
			return err
		}
		logger.Info("seeded demo data", zap.String("backend", cfg.Store.Backend))
		return nil
	},
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Store.Dir)
	case "postgres":
		pg, err := store.NewPostgresStore(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
