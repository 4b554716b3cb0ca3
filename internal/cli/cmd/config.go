package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/infrastructure/config"
)

var configSchemaOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where twinview keeps its files and the effective configuration.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config, database and log locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, the config file and TWINVIEW_*
environment variables have been merged.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the JSON schema for config.toml",
	Long: `Write a JSON schema describing config.toml, for editor completion.

Without --output the schema is written next to the config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)
	configSchemaCmd.Flags().StringVarP(&configSchemaOutput, "output", "o", "", "directory to write config.schema.json to, or - for stdout")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	logFile := filepath.Join(cfg.Logging.Dir, bootstrap.LogFileName)

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Println(renderer.RenderPaths([]styles.PathEntry{
		{Icon: styles.IconConfig, Label: "config", Path: app.Manager.ConfigFile(), Exists: exists(app.Manager.ConfigFile())},
		{Icon: styles.IconDatabase, Label: "database", Path: cfg.Database.Path, Exists: exists(cfg.Database.Path)},
		{Icon: styles.IconLogs, Label: "log", Path: logFile, Exists: exists(logFile)},
	}))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	enc := toml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndentTables(true)
	if err := enc.Encode(app.Config); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	theme := styles.NewTheme()
	renderer := styles.NewConfigRenderer(theme)

	if configSchemaOutput == "-" {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	dir := configSchemaOutput
	if dir == "" {
		var err error
		if dir, err = config.GetConfigDir(); err != nil {
			fmt.Println(renderer.RenderError(err))
			return err
		}
	}
	path, err := config.GenerateSchemaFile(dir)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(renderer.RenderSchemaWritten(path))
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
