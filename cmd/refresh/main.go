package main

// Recompute stored recommendations outside the request path:
//   go run ./cmd/refresh --user-id guest:abc
//   go run ./cmd/refresh --concurrency 8

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"petmatch-backend/internal/bootstrap"
	"petmatch-backend/internal/recommendations"
	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/telemetry"
	"petmatch-backend/internal/workerproc"
)

type userLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type options struct {
	userID      string
	limit       int
	concurrency int
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "refresh",
		Short:         "Recompute recommendation scores for one or all users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap.Build(config.Load())
			if err != nil {
				return fmt.Errorf("bootstrap build: %w", err)
			}
			defer app.Close()
			return run(cmd.Context(), app.RecommendationsService, app.UsersService, opts)
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user-id", "", "refresh a single user instead of every known user")
	cmd.Flags().IntVar(&opts.limit, "limit", recommendations.RefreshLimit, "number of recommendations to compute per user")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "users refreshed in parallel")
	return cmd
}

func run(ctx context.Context, refresher workerproc.Refresher, users userLister, opts options) error {
	ids := []string{strings.TrimSpace(opts.userID)}
	if ids[0] == "" {
		var err error
		ids, err = users.ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.concurrency))
	for _, id := range ids {
		g.Go(func() error {
			list, err := refresher.Refresh(gctx, id, opts.limit)
			if err != nil {
				failed.Add(1)
				telemetry.Warn("refresh.user_failed", map[string]any{"user_id": id, "error": err.Error()})
				return nil
			}
			telemetry.Debug("refresh.user_done", map[string]any{"user_id": id, "items": len(list.Items)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("refreshed %d users (%d failed)", len(ids)-int(failed.Load()), failed.Load())
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d refreshes failed", n, len(ids))
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Printf("refresh: %v", err)
		os.Exit(1)
	}
}
