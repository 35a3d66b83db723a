package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/presencelab/competitor-engine/internal/budget"
	"github.com/presencelab/competitor-engine/internal/config"
	"github.com/presencelab/competitor-engine/internal/resilience"
	"github.com/presencelab/competitor-engine/pkg/places"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "competitor-engine",
	Short: "Local competitor discovery and ranking",
	Long:  "Discovers nearby competitors for a business via radius-expansion search over the Places API, ranks them by distance and reputation, and reports the reputation gap.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newPlacesClient builds the provider client with the global budget
// guard, rate limiter, retry policy, and details cache from config.
func newPlacesClient() places.Client {
	guard := budget.NewGuard(map[string]int{
		places.BudgetChannel: cfg.Budget.GlobalPlacesCalls,
	})

	retry := resilience.DefaultPolicy()
	if cfg.Places.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.Places.RetryAttempts
	}

	opts := []places.Option{
		places.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Places.TimeoutSecs) * time.Second}),
		places.WithBudgetGuard(guard),
		places.WithRateLimit(cfg.Places.RateLimit),
		places.WithRetryPolicy(retry),
		places.WithDetailsCache(time.Duration(cfg.Places.CacheTTLHours) * time.Hour),
	}
	if cfg.Places.BaseURL != "" {
		opts = append(opts, places.WithBaseURL(cfg.Places.BaseURL))
	}

	return places.NewClient(cfg.Places.Key, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
