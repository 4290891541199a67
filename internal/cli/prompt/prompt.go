// Package prompt provides interactive terminal selection helpers.
package prompt

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/mcpinstall/mcpinstall/internal/claudecfg"
)

// ErrAborted is returned when the user dismisses the finder without
// selecting anything.
var ErrAborted = errors.New("selection aborted")

// SelectServer lets the user pick one registered server by fuzzy search.
// The preview pane shows how the server is launched.
func SelectServer(cfg *claudecfg.Config) (string, error) {
	names := cfg.ServerNames()
	if len(names) == 0 {
		return "", errors.New("no servers are registered")
	}

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			entry, ok, err := cfg.Server(names[i])
			if err != nil || !ok {
				return ""
			}
			return fmt.Sprintf("Name: %s\nCommand: %s\nArgs: %s",
				names[i],
				entry.Command,
				strings.Join(entry.Args, " "),
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrAborted
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}

	return names[idx], nil
}
