package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provide-io/ff8magic/pkg"
	"github.com/provide-io/ff8magic/pkg/magic/export"
	"github.com/provide-io/ff8magic/pkg/magic/format"
)

func newDumpCmd() *cobra.Command {
	var kernelPath, outPath string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the kernel spells to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = strings.TrimSuffix(kernelPath, filepath.Ext(kernelPath)) + ".magic.yaml"
			}
			spells, err := pkg.DumpKernel(kernelPath, outPath, logger)
			if err != nil {
				printFail(cmd.ErrOrStderr(), "dump failed: %v", err)
				return err
			}
			printOK(cmd.OutOrStdout(), "%d spells written to %s", len(spells), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kernelPath, "kernel", "k", "", "Path to kernel.bin (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output YAML path (default <kernel>.magic.yaml)")
	mustRequire(cmd, "kernel")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var kernelPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the kernel survives a load/save round trip unchanged",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pkg.VerifyKernelWithLogger(kernelPath, logger)
			if errors.Is(err, pkg.ErrKernelMismatch) {
				printFail(cmd.OutOrStdout(), "%s: %d records differ %v", kernelPath, len(report.Records), report.Records)
				return err
			}
			if err != nil {
				printFail(cmd.ErrOrStderr(), "verify failed: %v", err)
				return err
			}
			printOK(cmd.OutOrStdout(), "%s: %d spells (%d named), %d bytes, round trip identical",
				kernelPath, report.Spells, report.Named, report.Size)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kernelPath, "kernel", "k", "", "Path to kernel.bin (required)")
	mustRequire(cmd, "kernel")
	return cmd
}

func newPatchCmd() *cobra.Command {
	var kernelPath, spellsPath, outPath, backup string
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply YAML spell edits to the kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("backup") {
				backup = cfg.Backup
			}
			changed, err := pkg.PatchKernel(kernelPath, spellsPath, pkg.PatchOptions{
				OutPath: outPath,
				Backup:  backup,
				Logger:  logger,
			})
			if err != nil {
				printFail(cmd.ErrOrStderr(), "patch failed: %v", err)
				return err
			}
			target := outPath
			if target == "" {
				target = kernelPath
			}
			printOK(cmd.OutOrStdout(), "%d spells changed in %s", changed, target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kernelPath, "kernel", "k", "", "Path to kernel.bin (required)")
	cmd.Flags().StringVarP(&spellsPath, "spells", "s", "", "YAML spell file with edits (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this path instead of the kernel")
	cmd.Flags().StringVar(&backup, "backup", "", "Backup mode before overwriting (none, raw, gzip, bzip2)")
	mustRequire(cmd, "kernel", "spells")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var spellsPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run export validation over the new spells of a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := pkg.ValidateSpellFile(spellsPath)
			if err != nil {
				printFail(cmd.ErrOrStderr(), "validate failed: %v", err)
				return err
			}
			w := cmd.OutOrStdout()
			if result.IsValid() {
				printOK(w, "valid (%d warnings)", len(result.Warnings))
			} else {
				printFail(w, "%d errors, %d warnings", len(result.Errors), len(result.Warnings))
			}
			printIssues(w, result.ErrorStrings(), result.WarningStrings())
			if !result.IsValid() {
				return fmt.Errorf("%d validation errors", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&spellsPath, "spells", "s", "", "YAML spell file (required)")
	mustRequire(cmd, "spells")
	return cmd
}

func newExportCmd() *cobra.Command {
	var spellsPath, dir, baseName string
	var noManifest bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export new spells as a magic binary plus per-language resource files",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := pkg.ExportSpellFile(spellsPath, export.Options{
				Dir:           dir,
				BaseName:      baseName,
				WriteManifest: cfg.WriteManifest && !noManifest,
				Logger:        logger,
				Listener: func(ev export.Event) {
					logger.Debug("📣 Export event", "kind", ev.Kind, "files", len(ev.Files), "errors", len(ev.Errors))
				},
			})
			if err != nil {
				printFail(cmd.ErrOrStderr(), "export failed: %v", err)
				return err
			}

			w := cmd.OutOrStdout()
			if !result.Success {
				printFail(w, "export failed at %s after %s", result.Stage, result.Duration)
				printIssues(w, result.Errors, result.Warnings)
				return result.Err
			}
			printOK(w, "%d spells exported in %d languages (%d bytes) to %s",
				result.SpellCount, len(result.Languages), result.BytesWritten, dir)
			printFiles(w, result.Files)
			printIssues(w, nil, result.Warnings)
			return nil
		},
	}
	cmd.Flags().StringVarP(&spellsPath, "spells", "s", "", "YAML spell file (required)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Target directory (required)")
	cmd.Flags().StringVarP(&baseName, "name", "n", "custom_magic", "Base name of the exported files")
	cmd.Flags().BoolVar(&noManifest, "no-manifest", false, "Do not write export.manifest.json")
	mustRequire(cmd, "spells", "dir")
	return cmd
}

func newImportCmd() *cobra.Command {
	var binPath, outPath string
	var nameSlot, descSlot int
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Read an exported magic binary and its resource files into YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name-slot") {
				nameSlot = cfg.ImportNameSlot
			}
			if !cmd.Flags().Changed("desc-slot") {
				descSlot = cfg.ImportDescSlot
			}
			if outPath == "" {
				outPath = strings.TrimSuffix(binPath, filepath.Ext(binPath)) + ".magic.yaml"
			}
			result, err := pkg.ImportBinary(binPath, outPath, export.ImportOptions{
				NameSlotSize: nameSlot,
				DescSlotSize: descSlot,
				Logger:       logger,
			})
			if err != nil {
				printFail(cmd.ErrOrStderr(), "import failed: %v", err)
				return err
			}
			w := cmd.OutOrStdout()
			printOK(w, "%d spells in %s imported to %s", len(result.Spells), strings.Join(result.Languages, ", "), outPath)
			printIssues(w, nil, result.Warnings)
			return nil
		},
	}
	cmd.Flags().StringVarP(&binPath, "bin", "b", "", "Exported magic binary (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output YAML path (default <bin>.magic.yaml)")
	cmd.Flags().IntVar(&nameSlot, "name-slot", format.DefaultNameSlotSize, "Name slot size when the binary pointers are unusable")
	cmd.Flags().IntVar(&descSlot, "desc-slot", format.DefaultDescSlotSize, "Description slot size when the binary pointers are unusable")
	mustRequire(cmd, "bin")
	return cmd
}

func mustRequire(cmd *cobra.Command, flags ...string) {
	for _, f := range flags {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
}
