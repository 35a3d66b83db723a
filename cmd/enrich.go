package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/presencelab/competitor-engine/internal/competitor"
	"github.com/presencelab/competitor-engine/pkg/places"
)

var (
	enrichPlaceID  string
	enrichLat      float64
	enrichLng      float64
	enrichCategory string
	enrichInput    string
	enrichIDs      []string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich and rank a pre-supplied competitor list",
	Long:  "Skips discovery: takes competitor place IDs (or a JSON candidate file), applies the category filter, fetches details, and reports the reputation gap.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provided, err := loadProvided(enrichInput, enrichIDs)
		if err != nil {
			return err
		}
		if len(provided) == 0 {
			return eris.New("no competitors supplied, use --ids or --input")
		}

		target := competitor.Target{
			PlaceID:       enrichPlaceID,
			CategoryLabel: enrichCategory,
		}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			target.Location = &places.LatLng{Lat: enrichLat, Lng: enrichLng}
		}

		s := competitor.NewSearcher(newPlacesClient(), cfg)
		result := s.EnrichProvided(ctx, target, provided)

		zap.L().Info("enrichment finished",
			zap.String("run_id", result.RunID),
			zap.Int("supplied", len(provided)),
			zap.Int("competitors", len(result.Competitors)),
			zap.Int("api_calls", result.APICalls),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// loadProvided builds the candidate list from --input (a JSON array of
// candidates) or --ids (bare place IDs, details filled by enrichment).
func loadProvided(path string, ids []string) ([]competitor.Candidate, error) {
	var provided []competitor.Candidate

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "read candidate file")
		}
		if err := json.Unmarshal(data, &provided); err != nil {
			return nil, eris.Wrap(err, "parse candidate file")
		}
	}

	for _, id := range ids {
		if id == "" {
			continue
		}
		provided = append(provided, competitor.Candidate{PlaceID: id})
	}

	return provided, nil
}

func init() {
	enrichCmd.Flags().StringVar(&enrichPlaceID, "place-id", "", "target's provider place ID (required)")
	enrichCmd.Flags().Float64Var(&enrichLat, "lat", 0, "target latitude")
	enrichCmd.Flags().Float64Var(&enrichLng, "lng", 0, "target longitude")
	enrichCmd.Flags().StringVar(&enrichCategory, "category", "", "free-text business category label")
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "JSON file with candidate competitors")
	enrichCmd.Flags().StringSliceVar(&enrichIDs, "ids", nil, "comma-separated competitor place IDs")
	_ = enrichCmd.MarkFlagRequired("place-id")
	rootCmd.AddCommand(enrichCmd)
}
