package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/internal/claudecfg"
	"github.com/mcpinstall/mcpinstall/internal/redact"
)

var (
	listJSON        bool
	listShowSecrets bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listShowSecrets, "show-secrets", false, "Reveal masked secrets in env values")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers in the Claude Desktop configuration",
	Long: `List the MCP servers registered in the Claude Desktop configuration file.

Servers registered through the claude CLI are managed by claude itself and
do not appear here.

Environment variables containing secrets (TOKEN, KEY, SECRET, PASSWORD,
AUTH, CREDENTIAL, API_KEY) are masked by default. Use --show-secrets to
reveal them.`,
	Example: `  # List registered servers
  mcpinstall list

  # Output as JSON
  mcpinstall list --json

  See Also: mcpinstall remove, mcpinstall install`,
	RunE: runList,
}

// serverInfoJSON represents a registered server in JSON output format.
type serverInfoJSON struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

func runList(_ *cobra.Command, _ []string) error {
	return runListWithWriter(os.Stdout)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer) error {
	store := desktopStore()
	cfg := store.Load()

	if listJSON {
		return outputListJSON(w, cfg)
	}
	return outputListTabular(w, store.Path(), cfg)
}

func outputListJSON(w io.Writer, cfg *claudecfg.Config) error {
	output := make([]serverInfoJSON, 0, cfg.Len())

	for _, name := range cfg.ServerNames() {
		entry, ok, err := cfg.Server(name)
		if err != nil || !ok {
			continue
		}
		env := entry.Env
		if !listShowSecrets {
			env = redact.MaskSecrets(env)
		}
		output = append(output, serverInfoJSON{
			Name:    name,
			Command: entry.Command,
			Args:    entry.Args,
			Env:     env,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputListTabular(w io.Writer, path string, cfg *claudecfg.Config) error {
	fmt.Fprintf(w, "%sConfig: %s%s\n", colorCyan+colorBold, path, colorReset)

	names := cfg.ServerNames()
	if len(names) == 0 {
		fmt.Fprintf(w, "  %s(no MCP servers configured)%s\n", colorGray, colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %sNAME%s\t%sCOMMAND%s\t%sARGS%s\t%sENV%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, name := range names {
		entry, ok, err := cfg.Server(name)
		if err != nil || !ok {
			continue
		}

		env := entry.Env
		if !listShowSecrets {
			env = redact.MaskSecrets(env)
		}
		envKeys := make([]string, 0, len(env))
		for k, v := range env {
			envKeys = append(envKeys, k+"="+v)
		}
		sort.Strings(envKeys)

		fmt.Fprintf(tw, "  %s%s%s\t%s\t%s\t%s\n",
			colorGreen, name, colorReset,
			entry.Command,
			truncate(strings.Join(entry.Args, " "), 50),
			truncate(strings.Join(envKeys, " "), 40))
	}
	return tw.Flush()
}
