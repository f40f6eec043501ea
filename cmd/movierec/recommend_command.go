// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/movierec/internal/logging"
	"github.com/tomtom215/movierec/internal/models"
	"github.com/tomtom215/movierec/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var engine string
	var jsonOut bool
	var minRatings int

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Show the movies most related to a title",
		Long: "Resolve a title against the configured artifacts and print up to five related movies.\n" +
			"The similarity engine matches titles case-insensitively; the correlation engine also\n" +
			"ignores a trailing year such as \"(1995)\".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			recCfg := cfg.RecommendationConfig()
			if cmd.Flags().Changed("min-ratings") {
				recCfg.MinRatings = minRatings
			}

			store := recommend.NewArtifactStore(cfg.ArtifactSource(), recCfg, logging.WithComponent("artifacts"))
			svc, err := recommend.NewService(store, recCfg, logging.WithComponent("recommend"))
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			result, err := svc.GetRecommendations(cmd.Context(), recommend.Request{
				Engine: recommend.Engine(engine),
				Query:  query,
			})
			if err != nil {
				return describeLookupError(err, query)
			}

			if jsonOut {
				return writeJSON(cmd, responseBody(result))
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", string(recommend.EngineSimilarity), "Engine: similarity or correlation")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the API response body as JSON")
	cmd.Flags().IntVar(&minRatings, "min-ratings", 0, "Override the correlation rating-count threshold")
	return cmd
}

func describeLookupError(err error, query string) error {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return fmt.Errorf("movie not found: %q", query)
	case errors.Is(err, recommend.ErrInvalidRequest):
		return fmt.Errorf("invalid request: %w", err)
	case errors.Is(err, recommend.ErrArtifactUnavailable):
		return fmt.Errorf("artifacts unavailable: %w", err)
	default:
		return err
	}
}

// responseBody mirrors the HTTP API response shapes.
func responseBody(result *recommend.Result) any {
	if result.Engine == recommend.EngineCorrelation {
		out := models.CorrelationResponse{Recommendations: make([]models.CorrelatedMovie, 0, len(result.Correlations))}
		for _, m := range result.Correlations {
			out.Recommendations = append(out.Recommendations, models.CorrelatedMovie{Title: m.Title, Correlation: m.Correlation})
		}
		return out
	}
	titles := result.Titles
	if titles == nil {
		titles = []string{}
	}
	return models.SimilarityResponse{Recommendations: titles}
}

func printResult(cmd *cobra.Command, result *recommend.Result) {
	out := cmd.OutOrStdout()

	if result.Engine == recommend.EngineCorrelation {
		if len(result.Correlations) == 0 {
			fmt.Fprintln(out, "No correlated movies with enough ratings.")
			return
		}
		rows := make([][]string, 0, len(result.Correlations))
		for i, m := range result.Correlations {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				m.Title,
				strconv.FormatFloat(m.Correlation, 'f', 4, 64),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Title", "Correlation"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
		return
	}

	if len(result.Titles) == 0 {
		fmt.Fprintln(out, "No similar movies.")
		return
	}
	rows := make([][]string, 0, len(result.Titles))
	for i, title := range result.Titles {
		rows = append(rows, []string{strconv.Itoa(i + 1), title})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Title"}, rows, []columnAlignment{alignRight, alignLeft}))
}
