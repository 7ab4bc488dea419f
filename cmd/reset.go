package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"lovlearn/internal/guide"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the learning profile and guide history",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Print("This erases your learning profile and all saved guides. Continue? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.StateRepo()
		if err := repo.ClearProfile(ctx); err != nil {
			return err
		}
		if err := repo.SaveHistory(ctx, []guide.Guide{}); err != nil {
			return err
		}

		fmt.Println("All learner data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
