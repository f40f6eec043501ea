// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Command movierec is the operator CLI: one-off lookups against the
// configured artifacts, snapshot listing, and packing a DuckDB export into
// snapshot files the server can load.
//
//	movierec recommend "Heat" --engine similarity
//	movierec recommend "Heat (1995)" --engine correlation --json
//	movierec artifacts list
//	movierec artifacts pack --duckdb export.duckdb --keep 3
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
