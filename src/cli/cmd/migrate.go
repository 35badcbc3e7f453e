package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/stagepack/src/config"
)

var (
	migrateInPlace bool
	migrateOutput  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Migrate a project file to the latest schema version",
	Long: `Migrate a .stagepack.yml project file to the latest schema version.

By default, prints the migrated config to stdout. Use --in-place to
overwrite the file, or --output to write to a different path.

Unversioned files (path keys at the top level) are moved under paths:
and stamped version: 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateInPlace, "in-place", "i", false, "overwrite the config file in place")
	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "write migrated config to this path")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	inputPath := cfgFile
	if len(args) > 0 {
		inputPath = args[0]
	}
	inputPath, err := config.Find(inputPath)
	if err != nil {
		return err
	}
	if inputPath == "" {
		return errors.New("no project file found (.stagepack.yml or stagepack.toml)")
	}

	if strings.EqualFold(filepath.Ext(inputPath), ".toml") {
		return fmt.Errorf("%s: migrate handles YAML project files only", inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	migrated, err := config.MigrateToLatest(data)
	if err != nil {
		return err
	}

	log := zerolog.Ctx(cmd.Context())
	switch {
	case migrateInPlace:
		if err := os.WriteFile(inputPath, migrated, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", inputPath, err)
		}
		log.Info().Str("file", inputPath).Msg("migrated in place")

	case migrateOutput != "":
		if err := os.WriteFile(migrateOutput, migrated, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", migrateOutput, err)
		}
		log.Info().Str("from", inputPath).Str("to", migrateOutput).Msg("migrated")

	default:
		// Print to stdout (pipeable).
		_, err := cmd.OutOrStdout().Write(migrated)
		return err
	}

	return nil
}
