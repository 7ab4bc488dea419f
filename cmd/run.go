package cmd

import (
	"fmt"
	"os"

	"lovlearn/internal/app"
	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/llm"
	"lovlearn/internal/state"

	"github.com/spf13/cobra"
)

// runApp opens the store, restores state, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	persisted, err := st.StateRepo().Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	opts := app.Options{
		State:     state.New(persisted.Profile, persisted.History),
		StateRepo: st.StateRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Guide generation and the coach will be unavailable.")
	} else {
		opts.Generator = guide.NewGenerator(provider, guide.DefaultConfig())
		opts.Coach = coach.New(provider, coach.DefaultConfig())
	}

	return app.Run(opts)
}
