package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/storyprompt/internal/config"
	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func configTarget() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configTarget()
	if err != nil {
		return err
	}
	if config.Exists(path) && !configForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if workbookPath != "" {
		cfg.Workbook = workbookPath
	}
	if sheetName != "" {
		cfg.Sheet = sheetName
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if err := cfg.SaveTo(filepath.Clean(path)); err != nil {
		return err
	}
	logger.Debug("config written", zap.String("path", path))

	fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("Config written: ")+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
