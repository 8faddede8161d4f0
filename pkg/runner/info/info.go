package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/store"
)

type describer interface {
	Describe() string
}

type Info struct {
	Config   store.Config
	Notebook *app.Notebook
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("BNOTE_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "BNOTE_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "BNOTE_CONFIG_PATH env var not set")
	}

	_, _ = fmt.Fprintln(w, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.backend:", n.Config.Backend)
	_, _ = fmt.Fprintln(w, "Config.key_prefix:", n.Config.KeyPrefix)
	if n.Config.RetryEnabled {
		_, _ = fmt.Fprintf(w, "Config.retry: %d attempts, %s apart\n", n.Config.RetryCount, n.Config.RetryDelay)
	} else {
		_, _ = fmt.Fprintln(w, "Config.retry: disabled")
	}

	if n.Notebook == nil {
		return fmt.Errorf("failed to open the notebook")
	}
	if d, ok := n.Notebook.Store.(describer); ok {
		_, _ = fmt.Fprintln(w, "Storage:", d.Describe())
	}

	if err := n.Notebook.Load(ctx); err != nil {
		return err
	}
	batches := n.Notebook.Batches()
	days := n.Notebook.Days(nil)
	_, _ = fmt.Fprintf(w, "Batches: %d\n", len(batches))
	_, _ = fmt.Fprintf(w, "Entries: %d over %d days\n", daygroup.Count(days), len(days))
	if draft := n.Notebook.Draft(); draft != "" {
		_, _ = fmt.Fprintf(w, "Draft: %d bytes, confirmable: %t\n", len(draft), n.Notebook.CanConfirm())
	} else {
		_, _ = fmt.Fprintln(w, "Draft: empty")
	}
	return nil
}
