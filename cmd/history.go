package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved study guides",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.StateRepo().Load(context.Background())
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		if len(st.History) == 0 {
			fmt.Println("No saved guides yet.")
			return nil
		}

		fmt.Printf("%-26s  %-19s  %-6s  %s\n", "ID", "Created", "Cards", "Topic")
		fmt.Println(strings.Repeat("─", 80))
		for _, g := range st.History {
			fmt.Printf("%-26s  %-19s  %-6d  %s\n",
				g.ID,
				g.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				len(g.Content.Flashcards),
				g.Topic,
			)
		}
		return nil
	},
}
