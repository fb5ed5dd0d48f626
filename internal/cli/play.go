package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <game> <opponent>",
		Short: "Challenge another player (tictactoe or ultimatetictactoe)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, opponent := args[0], args[1]

			player, err := requirePlayer()
			if err != nil {
				return err
			}

			body := map[string]any{
				"player":  player,
				"options": []map[string]string{{"name": "opponent", "value": opponent}},
			}

			var result Message
			if err := client.Post(fmt.Sprintf("/api/commands/%s", game), body, &result); err != nil {
				return err
			}

			return showAndSave(result)
		},
	}
}

func newPuzzleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "puzzle",
		Short: "Start a sliding puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := requirePlayer()
			if err != nil {
				return err
			}

			var result Message
			if err := client.Post("/api/commands/slidingpuzzle", map[string]any{"player": player}, &result); err != nil {
				return err
			}

			return showAndSave(result)
		},
	}
}

func newActCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "act <control-id>",
		Short: "Activate a control on the current game message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controlID := args[0]

			player, err := requirePlayer()
			if err != nil {
				return err
			}

			current, err := cfg.LoadMessage()
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("no current game message; start one with challenge or puzzle")
			}

			body := map[string]string{
				"control_id":      controlID,
				"player":          player,
				"message_content": current.Content,
			}

			var result Message
			if err := client.Post("/api/interactions", body, &result); err != nil {
				return err
			}

			return showAndSave(result)
		},
	}
}

func requirePlayer() (string, error) {
	if cfg.Player == "" {
		return "", fmt.Errorf("player id required: set --player or ARCADE_PLAYER")
	}
	return cfg.Player, nil
}

// showAndSave prints a rendered message and, unless it is an ephemeral
// notice, stores it as the current game message
func showAndSave(msg Message) error {
	NewOutput(cfg.Output).Print(msg)

	if msg.Ephemeral {
		return nil
	}
	return cfg.SaveMessage(msg)
}
