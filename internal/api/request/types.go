package request

import "github.com/pocketarcade/pocketarcade/internal/command"

// CommandRequest is the request body for invoking a slash command
type CommandRequest struct {
	Player  string           `json:"player"`
	Options []command.Option `json:"options,omitempty"`
}

// InteractionRequest is the request body for a component activation:
// a player clicked a control on a previously rendered message
type InteractionRequest struct {
	ControlID      string `json:"control_id"`
	Player         string `json:"player"`
	MessageContent string `json:"message_content"`
	MessageLink    string `json:"message_link,omitempty"`
}
