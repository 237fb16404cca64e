package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/storyprompt/internal/config"
	"github.com/sant0-9/storyprompt/internal/interchange"
	"github.com/sant0-9/storyprompt/internal/logging"
	"github.com/sant0-9/storyprompt/internal/prompts"
	"github.com/sant0-9/storyprompt/internal/record"
	"github.com/sant0-9/storyprompt/internal/sheet"
	"github.com/sant0-9/storyprompt/internal/writer"
)

var version = "dev"

var (
	cfgFile      string
	workbookPath string
	sheetName    string
	outDir       string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storyprompt",
	Short: "Build Copilot prompts from a user story workbook",
	Long: `storyprompt selects user stories from a workbook by id and writes a
prompt file to paste into Microsoft 365 Copilot.

The answer comes back in the record format:

  ========== Historia 1 ==========
  ID_US::: HU001
  Titulo::: ...

and "storyprompt import" writes it back into the workbook.

Run without arguments to pick stories interactively.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/storyprompt/config.yaml)")
	pf.StringVarP(&workbookPath, "workbook", "w", "", "story workbook (.xlsx or .csv)")
	pf.StringVarP(&sheetName, "sheet", "s", "", "worksheet name")
	pf.StringVarP(&outDir, "out", "o", "", "output directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	promptCmd.Flags().IntVar(&maxChars, "max-chars", 0, "split the prompt into files of at most this many characters (default from config)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every story")
	importCmd.Flags().StringVarP(&importTarget, "target", "t", "", "file to update (default: the configured workbook)")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config")

	rootCmd.AddCommand(listCmd, promptCmd, exportCmd, importCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// loadConfig reads the config file, falls back to defaults and applies the
// global flags on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
		if err == nil && cfg == nil {
			err = fmt.Errorf("config file %s not found", cfgFile)
		}
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if workbookPath != "" {
		cfg.Workbook = workbookPath
	}
	if sheetName != "" {
		cfg.Sheet = sheetName
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sheetOptions(cfg *config.Config) sheet.Options {
	return sheet.Options{
		Sheet:    cfg.Sheet,
		IDColumn: cfg.Columns.ID,
		Expect:   cfg.Expected(),
	}
}

// loadStories reads the configured workbook and logs what was skipped.
func loadStories(cfg *config.Config) (*record.Table, error) {
	logger.Debug("loading stories", zap.String("workbook", cfg.Workbook), zap.String("sheet", cfg.Sheet))

	t, report, err := sheet.Load(cfg.Workbook, sheetOptions(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info("stories loaded",
		zap.String("path", report.Path),
		zap.String("sheet", report.Sheet),
		zap.Int("rows", report.Rows))
	if len(report.MissingColumns) > 0 {
		logger.Warn("columns not found", zap.Strings("columns", report.MissingColumns))
	}
	if len(report.MissingID) > 0 {
		logger.Warn("rows without id skipped", zap.Ints("rows", report.MissingID))
	}
	if len(report.Duplicates) > 0 {
		logger.Warn("duplicate ids, first row wins", zap.Strings("ids", report.Duplicates))
	}
	return t, nil
}

func newRenderer(cfg *config.Config) (*prompts.Renderer, error) {
	columns := make([]prompts.Column, 0, len(cfg.Prompt.Fields))
	for _, f := range cfg.Prompt.Fields {
		columns = append(columns, prompts.Column{Name: f.Column, Label: f.Label})
	}
	if cfg.Prompt.Template != "" {
		return prompts.NewFromFile(cfg.Prompt.Template, columns)
	}
	return prompts.New(columns)
}

func newService(cfg *config.Config, log *zap.Logger) *interchange.Service {
	svc := interchange.New(writer.New(cfg.Output.Dir), log)
	svc.PromptPrefix = cfg.Output.PromptPrefix
	svc.ExportPrefix = cfg.Output.ExportPrefix
	return svc
}
