// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the resource cache",
	}

	cacheListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists the request keys held by the configured cache store",
		RunE:  withSignalWatcher(runCacheList),
		Example: `
	holocron cache list
	holocron cache list --cache-path swapi.json --json
	holocron cache list --cache-store redis -c holocron.env`,
	}
	pipelineFlags(cacheListCmd)
	cacheListCmd.Flags().Bool("json", false, "Output the cache keys in JSON format")

	cacheCmd.AddCommand(cacheListCmd)
	return cacheCmd
}

func runCacheList(ctx context.Context, cmd *cobra.Command, _ []string) error {
	sp, _ := pterm.DefaultSpinner.WithText("loading resource cache...").Start()

	p, err := newPipeline(ctx)
	if err != nil {
		sp.Fail(err.Error())
		return err
	}

	// listing is read only, the cache is not flushed back to the store
	keys := p.Cache().Keys()
	if err := p.Cache().Close(); err != nil {
		sp.Fail(err.Error())
		return err
	}
	sp.Success(fmt.Sprintf("resource cache holds %d entries", len(keys)))

	if cmd.Flags().Lookup("json").Value.String() == trueStr {
		return printJSON(keys)
	}
	if len(keys) == 0 {
		return nil
	}

	data := pterm.TableData{{"#", "Key"}}
	for i, key := range keys {
		data = append(data, []string{fmt.Sprint(i + 1), key})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return fmt.Errorf("rendering cache keys: %w", err)
	}
	return nil
}
