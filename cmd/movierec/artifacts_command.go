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

	"github.com/tomtom215/movierec/internal/recommend/storage"
)

func newArtifactsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Inspect and publish model snapshots",
	}
	cmd.AddCommand(newArtifactsListCommand(ctx))
	cmd.AddCommand(newArtifactsPackCommand(ctx))
	return cmd
}

func newArtifactsListCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest version first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Artifacts.Path
			}

			store, err := storage.OpenStore(dir)
			if err != nil {
				return err
			}
			snapshots, err := store.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				if snapshots == nil {
					snapshots = []storage.ModelMetadata{}
				}
				return writeJSON(cmd, snapshots)
			}
			if len(snapshots) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No snapshots in %s\n", store.Dir())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSnapshots(snapshots))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default artifacts.path)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print snapshot metadata as JSON")
	return cmd
}

func newArtifactsPackCommand(ctx *commandContext) *cobra.Command {
	var duckdbPath string
	var dir string
	var keep int

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Convert a DuckDB export into new snapshot versions",
		Long: "Read the similarity and correlation models from a DuckDB file, validate them and\n" +
			"write each as the next snapshot version. Nothing is written unless both models are valid.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if duckdbPath == "" {
				duckdbPath = cfg.Artifacts.DuckDBPath
			}
			if strings.TrimSpace(duckdbPath) == "" {
				return errors.New("--duckdb is required")
			}
			if dir == "" {
				dir = cfg.Artifacts.Path
			}
			if keep < 0 {
				return fmt.Errorf("--keep must be >= 0, got %d", keep)
			}

			store, err := storage.NewStore(dir)
			if err != nil {
				return err
			}
			written, err := storage.Pack(cmd.Context(), storage.NewDuckDBSource(duckdbPath), store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d snapshot(s) to %s\n", len(written), store.Dir())
			fmt.Fprintln(out, renderSnapshots(written))

			if keep > 0 {
				for _, name := range []string{storage.SimilarityName, storage.CorrelationName} {
					removed, err := store.Prune(cmd.Context(), name, keep)
					if err != nil {
						return err
					}
					if removed > 0 {
						fmt.Fprintf(out, "Pruned %d old %s snapshot(s)\n", removed, name)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "DuckDB file to read (default artifacts.duckdb_path)")
	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory to write (default artifacts.path)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the newest N versions of each model (0 keeps all)")
	return cmd
}

func renderSnapshots(snapshots []storage.ModelMetadata) string {
	rows := make([][]string, 0, len(snapshots))
	for _, m := range snapshots {
		users := "-"
		if m.UserCount > 0 {
			users = strconv.Itoa(m.UserCount)
		}
		rows = append(rows, []string{
			m.Name,
			strconv.Itoa(m.Version),
			m.Source,
			strconv.Itoa(m.MovieCount),
			users,
			formatBytes(m.SizeBytes),
			m.SavedAt.Local().Format("2006-01-02 15:04"),
			shortChecksum(m.Checksum),
		})
	}
	return renderTable(
		[]string{"Name", "Version", "Source", "Movies", "Users", "Size", "Saved", "Checksum"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
