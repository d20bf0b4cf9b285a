// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/holocron/pkg/cache"
	"github.com/xataio/holocron/pkg/pipeline"
	"github.com/xataio/holocron/pkg/transform"
)

func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate different parts of the holocron configuration",
	}

	validateMappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Validates the mapping table and the coercion rules",
		RunE:  withSignalWatcher(runValidateMappings),
		Example: `
	holocron validate mappings
	holocron validate mappings --mapping-file mappings.yaml
	holocron validate mappings -c holocron.yaml --json`,
	}
	pipelineFlags(validateMappingsCmd)
	validateMappingsCmd.Flags().Bool("json", false, "Output the mapping table in JSON format")

	validateCmd.AddCommand(validateMappingsCmd)
	return validateCmd
}

type mappingStatus struct {
	Kind   transform.Kind `json:"kind"`
	Source string         `json:"source"`
	Target string         `json:"target"`
}

func runValidateMappings(ctx context.Context, cmd *cobra.Command, _ []string) error {
	sp, _ := pterm.DefaultSpinner.WithText("validating holocron mapping table...").Start()

	// the configured store is not needed to compile the rules
	p, err := newPipeline(ctx, pipeline.WithStore(cache.NewMemoryStore(nil)))
	if err != nil {
		sp.Fail(err.Error())
		return err
	}
	if err := p.Close(ctx); err != nil {
		sp.Fail(err.Error())
		return err
	}

	table := p.MappingTable()
	statuses := []mappingStatus{}
	for _, kind := range table.Kinds() {
		mappings, _ := table.Mappings(kind)
		for _, m := range mappings {
			statuses = append(statuses, mappingStatus{Kind: kind, Source: m.Source, Target: m.Target})
		}
	}
	sp.Success(fmt.Sprintf("mapping table is valid: %d kinds, %d fields", len(table.Kinds()), len(statuses)))

	if cmd.Flags().Lookup("json").Value.String() == trueStr {
		return printJSON(statuses)
	}

	data := pterm.TableData{{"Kind", "Source", "Target"}}
	for _, s := range statuses {
		data = append(data, []string{s.Kind.String(), s.Source, s.Target})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return fmt.Errorf("rendering mapping table: %w", err)
	}
	return nil
}
