// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/holocron/internal/json"
	"github.com/xataio/holocron/pkg/cache"
)

func newFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetches a remote resource through the resource cache",
		RunE:  withSignalWatcher(runFetch),
		Example: `
	holocron fetch --url https://swapi.dev/api/planets/1/
	holocron fetch --url https://swapi.dev/api/people/ --param search=r2
	holocron fetch --url https://swapi.dev/api/starships/ --param search=falcon --cache-store redis -c holocron.env`,
	}

	pipelineFlags(fetchCmd)
	fetchCmd.Flags().String("url", "", "URL of the resource to fetch")
	fetchCmd.Flags().StringToString("param", nil, "Query parameters for the request, in the format <name>=<value>")
	return fetchCmd
}

var errNoURL = errors.New("--url is required")

func runFetch(ctx context.Context, cmd *cobra.Command, _ []string) error {
	url := cmd.Flags().Lookup("url").Value.String()
	if url == "" {
		return errNoURL
	}
	params, err := cmd.Flags().GetStringToString("param")
	if err != nil {
		return err
	}

	sp, _ := pterm.DefaultSpinner.WithText(fmt.Sprintf("fetching %s...", cache.Key(url, params))).Start()

	p, err := newPipeline(ctx)
	if err != nil {
		sp.Fail(err.Error())
		return err
	}

	resource, err := p.Fetch(ctx, url, params)
	if err = errors.Join(err, p.Close(ctx)); err != nil {
		sp.Fail(err.Error())
		return err
	}

	stats := p.Cache().Stats()
	if stats.Hits > 0 {
		sp.Success("resource served from cache")
	} else {
		sp.Success("resource fetched and cached")
	}
	return printJSON(resource)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Print(string(b)) //nolint:forbidigo
	return nil
}
