package kernel

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ff8magic/pkg/magic/operations"
	_ "github.com/provide-io/ff8magic/pkg/magic/operations/compress"
)

// BackupSuffix is appended to the kernel path before the operation extensions.
const BackupSuffix = ".bak"

func backupDisabled(mode string) bool {
	return mode == "" || strings.EqualFold(mode, "none")
}

// BackupPath returns where a backup of path is written for the given mode.
// A mode is an operation chain such as "gzip" or "raw|bzip2".
func BackupPath(path, mode string) (string, error) {
	ids, err := operations.ParseChain(mode)
	if err != nil {
		return "", err
	}
	return path + BackupSuffix + operations.ChainExtension(ids), nil
}

// RestoreBackup reads a backup written by Save and reverses its operations.
func RestoreBackup(path, mode string) ([]byte, error) {
	ids, err := operations.ParseChain(mode)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path + BackupSuffix + operations.ChainExtension(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return operations.ReverseChain(data, ids)
}

// writeBackup stores data next to path. An empty or "none" mode is a no-op
// and returns "".
func writeBackup(path string, data []byte, mode string, logger hclog.Logger) (string, error) {
	if backupDisabled(mode) {
		return "", nil
	}
	ids, err := operations.ParseChain(mode)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	out, err := operations.ApplyChain(data, ids)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	target := path + BackupSuffix + operations.ChainExtension(ids)
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", target, err)
	}
	logger.Debug("🗄️ Kernel backup written", "path", target, "chain", mode,
		"original_size", len(data), "backup_size", len(out))
	return target, nil
}
