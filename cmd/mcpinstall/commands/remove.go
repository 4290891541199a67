package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/internal/cli/prompt"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a server from the Claude Desktop configuration",
	Long: `Remove one MCP server entry from the Claude Desktop configuration file.

With no name, pick the server interactively with a fuzzy finder.
Removing a server that is not registered is a no-op.

A confirmation prompt is shown before removal unless --force is specified.`,
	Example: `  # Remove a server by name
  mcpinstall remove weather

  # Pick interactively
  mcpinstall remove

  # Remove without confirmation
  mcpinstall remove weather --force

  See Also: mcpinstall list, mcpinstall install`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func runRemove(_ *cobra.Command, args []string) error {
	return runRemoveWithIO(args, os.Stdout, os.Stdin)
}

// runRemoveWithIO allows injecting reader and writer for testing.
func runRemoveWithIO(args []string, w io.Writer, r io.Reader) error {
	store := desktopStore()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		selected, err := prompt.SelectServer(store.Load())
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(w, "removal cancelled")
				return nil
			}
			return err
		}
		name = selected
	}

	if !removeForce {
		if !confirmRemoval(w, r, name) {
			fmt.Fprintln(w, "removal cancelled")
			return nil
		}
	}

	if err := store.Remove(name); err != nil {
		return errors.Wrapf(err, "removing %q", name)
	}

	fmt.Fprintf(w, "Removed %q from %s\n", name, store.Path())
	return nil
}

// confirmRemoval prompts the user to confirm server removal.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func confirmRemoval(w io.Writer, r io.Reader, name string) bool {
	fmt.Fprintf(w, "Remove MCP server %q? [y/N]: ", name)

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
