package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/output"
)

var findRole string
var findMaxDepth int

var findCmd = &cobra.Command{
	Use:   "find LABEL",
	Short: "Search the application's accessibility tree",
	Long: `Connect to the accessibility bus, locate the application named by --app and
print the first element with the given label and role. The search is
depth-first and stops at --max-depth.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		desktop, err := a11y.ConnectDesktop(ctx)
		if err != nil {
			return err
		}
		defer desktop.Close()

		return findElement(cmd.OutOrStdout(), desktop.Root(), cfg.App, args[0], findRole, cfg.MaxDepth)
	},
}

func findElement(w io.Writer, desktop a11y.Node, app, label, role string, maxDepth int) error {
	root, err := a11y.FindApplication(desktop, app)
	if err != nil {
		return err
	}

	node, err := a11y.FindElement(root, label, role, maxDepth)
	if err != nil {
		return err
	}

	count, _ := node.ChildCount()
	output.FormatInfo(w, fmt.Sprintf("%s %s %q (%d children)", app, role, label, count))

	if role == a11y.RoleMenuBar {
		menubar, err := a11y.LoadMenubar(root)
		if err != nil {
			return err
		}
		for _, name := range menubar.Names {
			menu, _ := menubar.Menu(name)
			items, _ := menu.ChildCount()
			output.FormatInfo(w, fmt.Sprintf("  %s (%d items)", name, items))
		}
	}
	return nil
}

func init() {
	findCmd.Flags().StringVar(&findRole, "role", "", "Accessible role to match, e.g. \"menu\" or \"push button\" (required)")
	findCmd.Flags().IntVar(&findMaxDepth, "max-depth", a11y.DefaultMaxDepth, "Maximum depth below the application node")
	_ = findCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(findCmd)
}
