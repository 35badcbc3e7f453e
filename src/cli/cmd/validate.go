package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagepack/src/bundle"
	"github.com/sofmeright/stagepack/src/config"
	"github.com/sofmeright/stagepack/src/merge"
	"github.com/sofmeright/stagepack/src/output"
)

var validatePaths pathFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project file and generate every environment",
	Long: `Validate the project file, then generate each environment with strict
merging so structural conflicts between the common and environment configs
are reported as failures. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validatePaths.register(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color := output.UseColor()
	w := cmd.OutOrStdout()
	start := time.Now()

	output.SectionStart(w, "stagepack_validate", "Validate")
	defer output.SectionEnd(w, "stagepack_validate")

	warnings, cfgErr := config.Validate(cfg)

	sec := output.NewSection(w, "Project file", 0, color)
	if cfgErr != nil {
		output.RowStatus(sec, "schema", cfgErr.Error(), "failed", color)
	} else {
		output.RowStatus(sec, "schema", "", "success", color)
	}
	output.SectionWarnings(sec, warnings, color)
	sec.Close()

	var failures []error
	if cfgErr != nil {
		failures = append(failures, cfgErr)
	}

	sec = output.NewSection(w, "Environments", 0, color)
	opts, err := validatePaths.options(ctx, cfg)
	if err != nil {
		output.RowStatus(sec, "options", err.Error(), "failed", color)
		failures = append(failures, err)
	} else {
		for _, env := range bundle.Environments() {
			built, err := bundle.Generate(ctx, env, opts, merge.WithPolicy(merge.PolicyStrict))
			if err != nil {
				output.RowStatus(sec, string(env), err.Error(), "failed", color)
				failures = append(failures, err)
				continue
			}
			detail := fmt.Sprintf("%s, %s",
				output.Count(len(built.Rules()), "rule"), output.Count(len(built.Plugins), "plugin"))
			output.RowStatus(sec, string(env), detail, "success", color)
		}
	}
	sec.Close()

	status := "success"
	if len(failures) > 0 {
		status = "failed"
	}
	output.SummaryTotal(w, time.Since(start), status, color)

	return errors.Join(failures...)
}
