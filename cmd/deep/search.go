package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
)

var (
	searchProvider string
	searchOpen     bool
	searchPick     bool
	searchJSON     bool
	searchTimeout  time.Duration
)

var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Aliases: []string{"s"},
	Short:   "Run one search and print the results.",
	Example: "deep search meeting notes --provider filesystem",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), searchTimeout)
		defer cancel()

		a, err := newApp(ctx, appCfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if searchProvider != "" {
			if err := a.providers.SetActive(searchProvider); err != nil {
				return err
			}
		}

		controller := a.newController(searchOpen || searchPick)
		defer func() {
			controller.Close()
			controller.Wait()
		}()

		snap, err := settle(ctx, controller, strings.Join(args, " "))
		if err != nil {
			return err
		}

		if searchPick {
			return pickAndOpen(ctx, controller, snap)
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap.Results); err != nil {
				return err
			}
		} else {
			printResults(out, snap.Results, time.Now())
		}

		if searchOpen {
			result, err := controller.Confirm(ctx)
			if err != nil {
				return err
			}
			logger.Info("opened result", "path", result.Path)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchProvider, "provider", "p", "", "provider to use (stub, filesystem, all)")
	searchCmd.Flags().BoolVarP(&searchOpen, "open", "o", false, "open the top result")
	searchCmd.Flags().BoolVar(&searchPick, "pick", false, "choose a result interactively and open it")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(searchCmd)
}

// settle sets the query and waits for the controller to publish its results
func settle(ctx context.Context, controller driving.SearchController, query string) (domain.Snapshot, error) {
	if !domain.Query(query).HasQuery() {
		return domain.Snapshot{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	updates, unsubscribe := controller.Subscribe()
	defer unsubscribe()

	controller.SetQuery(query)

	for {
		select {
		case <-ctx.Done():
			return domain.Snapshot{}, fmt.Errorf("search did not finish: %w", ctx.Err())
		case snap, ok := <-updates:
			if !ok {
				return domain.Snapshot{}, domain.ErrClosed
			}
			if snap.State() == domain.SearchStateSettled {
				return snap, nil
			}
		}
	}
}

// pickAndOpen lets the user choose a result, moves the controller selection
// onto it and confirms
func pickAndOpen(ctx context.Context, controller driving.SearchController, snap domain.Snapshot) error {
	if len(snap.Results) == 0 {
		return domain.ErrNoSelection
	}

	now := time.Now()
	idx, err := fuzzyfinder.Find(snap.Results,
		func(i int) string { return snap.Results[i].Title },
		fuzzyfinder.WithPromptString("open> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			r := snap.Results[i]
			return fmt.Sprintf("%s\n\n%s\nType: %s\nSize: %s\nModified: %s\nCreated: %s",
				r.Title, r.Path, r.Type, r.FormattedSize(), r.FormattedModified(now), r.FormattedCreated())
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil
	}
	if err != nil {
		return err
	}

	for i := 0; i < idx; i++ {
		controller.Next()
	}

	result, err := controller.Confirm(ctx)
	if err != nil {
		return err
	}
	logger.Info("opened result", "path", result.Path)
	return nil
}

func printResults(out io.Writer, results []*domain.SearchResult, now time.Time) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No results")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tTYPE\tLOCATION\tSIZE\tMODIFIED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Title, r.Type, r.Subtitle, r.FormattedSize(), r.FormattedModified(now))
	}
	_ = w.Flush()
}
