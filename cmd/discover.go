package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/presencelab/competitor-engine/internal/competitor"
	"github.com/presencelab/competitor-engine/pkg/places"
)

var (
	discoverPlaceID  string
	discoverLat      float64
	discoverLng      float64
	discoverCategory string
	discoverRating   float64
	discoverReviews  int
	discoverMax      int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover and rank competitors for a business",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if discoverMax > 0 {
			cfg.Discovery.MaxCompetitors = discoverMax
		}

		target := buildTarget(cmd)
		s := competitor.NewSearcher(newPlacesClient(), cfg)
		result := s.Discover(ctx, target)

		zap.L().Info("discovery finished",
			zap.String("run_id", result.RunID),
			zap.Int("competitors", len(result.Competitors)),
			zap.Int("api_calls", result.APICalls),
			zap.Float64("cost_usd", result.CostUSD),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// buildTarget assembles the target from the discover flags. Rating and
// review count stay nil unless the flag was set so the engine knows to
// fetch them.
func buildTarget(cmd *cobra.Command) competitor.Target {
	target := competitor.Target{
		PlaceID:       discoverPlaceID,
		CategoryLabel: discoverCategory,
	}
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		target.Location = &places.LatLng{Lat: discoverLat, Lng: discoverLng}
	}
	if cmd.Flags().Changed("rating") {
		r := discoverRating
		target.Rating = &r
	}
	if cmd.Flags().Changed("reviews") {
		n := discoverReviews
		target.ReviewCount = &n
	}
	return target
}

func init() {
	discoverCmd.Flags().StringVar(&discoverPlaceID, "place-id", "", "target's provider place ID (required)")
	discoverCmd.Flags().Float64Var(&discoverLat, "lat", 0, "target latitude")
	discoverCmd.Flags().Float64Var(&discoverLng, "lng", 0, "target longitude")
	discoverCmd.Flags().StringVar(&discoverCategory, "category", "", "free-text business category label")
	discoverCmd.Flags().Float64Var(&discoverRating, "rating", 0, "target's own rating, skips the provider lookup")
	discoverCmd.Flags().IntVar(&discoverReviews, "reviews", 0, "target's own review count")
	discoverCmd.Flags().IntVar(&discoverMax, "max", 0, "competitor cap, overrides config")
	_ = discoverCmd.MarkFlagRequired("place-id")
	rootCmd.AddCommand(discoverCmd)
}
