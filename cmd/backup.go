package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/backup"
)

var backupYes bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import a progress backup",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write today's progress, favorites and settings to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		now := time.Now()
		path := backup.FileName(now)
		if len(args) == 1 {
			path = args[0]
		}
		data, err := backup.Export(a.ps, a.kv, now)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a backup file, overwriting today's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if !backupYes && !confirm(a.T("overwrite_confirm", "Overwrite current progress?")) {
			return nil
		}
		if err := backup.Import(data, a.ps, a.kv); err != nil {
			if errors.Is(err, backup.ErrInvalidBackup) {
				return errors.New(a.T("import_error", "Error importing file."))
			}
			return err
		}
		fmt.Println(a.T("backup_restored", "Data restored successfully!"))
		return nil
	},
}

func init() {
	backupImportCmd.Flags().BoolVarP(&backupYes, "yes", "y", false, "Skip the confirmation prompt")
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
}
