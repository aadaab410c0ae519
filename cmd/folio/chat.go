package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/folio-site/folio/pkg/config"
)

func newChatCmd() *cobra.Command {
	var configPath string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the assistant a question, or start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			a, cleanup, err := buildAssistant(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			if len(args) > 0 {
				reply, mode := a.Respond(ctx, sessionID, strings.Join(args, " "))
				fmt.Printf("%s\n[%s]\n", reply, mode)
				return nil
			}

			scanner := bufio.NewScanner(os.Stdin)
			fmt.Println("Interactive chat. Empty line exits.")
			for {
				fmt.Print("you> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					break
				}
				reply, mode := a.Respond(ctx, sessionID, line)
				fmt.Printf("folio [%s]> %s\n", mode, reply)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "folio.yaml", "path to config file")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id (defaults to a fresh one)")
	return cmd
}
