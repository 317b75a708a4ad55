package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the config file location, the effective settings, and the JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the merged configuration (file values over defaults) as JSON.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	Long: `Print the JSON schema describing config.toml. Editors with TOML
language servers can validate the config file against it.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)

	configSchemaCmd.Flags().BoolVar(&schemaWrite, "write", false, "write the schema next to the config file instead of stdout")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	configFile, err := config.GetConfigFile()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	fmt.Println(configFile)

	if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
		fmt.Println(app.Theme.Subtle.Render("(not created yet; defaults are in effect)"))
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(app.Config)
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if schemaWrite {
		if err := config.GenerateSchemaFile(); err != nil {
			return err
		}
		schemaFile, err := config.GetSchemaFile()
		if err != nil {
			return err
		}
		fmt.Println(app.Theme.SuccessStyle.Render("Schema written: " + schemaFile))
		return nil
	}

	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
