// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/holocron/internal/progress"
	"github.com/xataio/holocron/pkg/cache"
	"github.com/xataio/holocron/pkg/dataset"
	"github.com/xataio/holocron/pkg/pipeline"
	"github.com/xataio/holocron/pkg/transform"
)

func newTransformCmd() *cobra.Command {
	transformCmd := &cobra.Command{
		Use:   "transform",
		Short: "Transforms raw records of the given kind into canonical records",
		RunE:  withSignalWatcher(runTransform),
		Example: `
	holocron transform --kind planet --input planets.csv --output planets.json
	holocron transform --kind droid --input droids.json --name R2-D2
	holocron transform --kind person --url https://swapi.dev/api/people/ --search "Luke Skywalker"
	holocron transform --kind starship --input starships.json -c holocron.yaml`,
	}

	pipelineFlags(transformCmd)
	transformCmd.Flags().StringP("kind", "k", "", "Kind of the records to transform. One of droid, person, planet, species, starship, vehicle")
	transformCmd.Flags().StringP("input", "i", "", "CSV or JSON file with the records to transform")
	transformCmd.Flags().String("url", "", "URL of the resource to fetch and transform, as an alternative to --input")
	transformCmd.Flags().String("search", "", "Search term sent with the --url request. The first result is transformed")
	transformCmd.Flags().String("name", "", "Only transform the input record with this name")
	transformCmd.Flags().StringP("output", "o", "", "File where the transformed records will be written. Defaults to stdout")
	transformCmd.Flags().Bool("progress", false, "Show a progress bar while transforming the --input records")
	return transformCmd
}

var (
	errNoSource       = errors.New("one of --input or --url is required")
	errTooManySources = errors.New("--input and --url cannot be used together")
)

// searchParam is the query parameter used for name searches.
const searchParam = "search"

func runTransform(ctx context.Context, cmd *cobra.Command, _ []string) error {
	kind, err := transform.ParseKind(cmd.Flags().Lookup("kind").Value.String())
	if err != nil {
		return err
	}

	input := cmd.Flags().Lookup("input").Value.String()
	url := cmd.Flags().Lookup("url").Value.String()
	switch {
	case input == "" && url == "":
		return errNoSource
	case input != "" && url != "":
		return errTooManySources
	}

	sp, _ := pterm.DefaultSpinner.WithText(fmt.Sprintf("transforming %s records...", kind)).Start()

	var opts []pipeline.Option
	showProgress := input != "" && cmd.Flags().Lookup("progress").Value.String() == trueStr
	if showProgress {
		opts = append(opts, pipeline.WithProgressBar(progress.NewRecordsBar))
	}

	p, err := newPipeline(ctx, opts...)
	if err != nil {
		sp.Fail(err.Error())
		return err
	}
	if showProgress {
		// the bar takes over the terminal
		_ = sp.Stop()
	}

	result, count, err := func() (any, int, error) {
		if url != "" {
			return transformResource(ctx, cmd, p, kind, url)
		}
		return transformFile(ctx, cmd, p, kind, input)
	}()
	closeErr := p.Close(ctx)
	if err = errors.Join(err, closeErr); err != nil {
		sp.Fail(err.Error())
		return err
	}

	output := cmd.Flags().Lookup("output").Value.String()
	if output == "" {
		sp.Success(fmt.Sprintf("transformed %d %s records", count, kind))
		return printJSON(result)
	}

	if err := dataset.WriteJSON(output, result); err != nil {
		sp.Fail(err.Error())
		return err
	}
	sp.Success(fmt.Sprintf("transformed %d %s records into %s", count, kind, output))
	return nil
}

func transformFile(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, kind transform.Kind, input string) (any, int, error) {
	name := cmd.Flags().Lookup("name").Value.String()
	records, err := p.TransformFile(ctx, kind, input, name)
	if err != nil {
		return nil, 0, err
	}
	// a named record is written on its own
	if name != "" && len(records) == 1 {
		return records[0], 1, nil
	}
	return records, len(records), nil
}

func transformResource(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, kind transform.Kind, url string) (any, int, error) {
	var params cache.Params
	if search := cmd.Flags().Lookup("search").Value.String(); search != "" {
		params = cache.Params{searchParam: search}
	}
	rec, err := p.TransformResource(ctx, kind, url, params)
	if err != nil {
		return nil, 0, err
	}
	return rec, 1, nil
}
