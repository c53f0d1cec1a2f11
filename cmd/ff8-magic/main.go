package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/ff8magic/internal/config"
	"github.com/provide-io/ff8magic/pkg/logging"
	"github.com/provide-io/ff8magic/pkg/magic/format"
	"github.com/provide-io/ff8magic/pkg/magic/operations/compress"
)

const version = "0.1.0"

var (
	logLevel    string
	noColor     bool
	versionFlag bool

	cfg      config.Config
	logger   hclog.Logger = hclog.NewNullLogger()
	closeLog              = func() error { return nil }
	rootCmd  *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("ff8-magic %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

// setup loads configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(config.DotEnvFile)
	if err != nil {
		return err
	}

	out, closeFn, err := logging.OpenOutput(cfg.LogPath)
	if err != nil {
		return err
	}
	closeLog = closeFn

	logger = logging.NewLogger(logging.Options{
		Name:   "ff8-magic",
		Level:  logging.ResolveLevel(logLevel, cfg.LogLevel),
		JSON:   cfg.JSONLog,
		Output: out,
	})
	format.SetLogger(logger)
	compress.SetLogger(logger)
	setupColor(noColor || cfg.NoColor)

	logger.Debug("🔧 Configuration loaded", "backup", cfg.Backup, "manifest", cfg.WriteManifest,
		"name_slot", cfg.ImportNameSlot, "desc_slot", cfg.ImportDescSlot)
	return nil
}

func init() {
	rootCmd = &cobra.Command{
		Use:               "ff8-magic",
		Short:             "Edit and export Final Fantasy VIII kernel.bin magic",
		Long:              `Dump, patch and verify the magic section of kernel.bin and export new spells with their text resources.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion()
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		newDumpCmd(),
		newVerifyCmd(),
		newPatchCmd(),
		newValidateCmd(),
		newExportCmd(),
		newImportCmd(),
	)
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion()
		os.Exit(0)
	}

	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
