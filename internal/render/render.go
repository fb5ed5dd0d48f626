// Package render defines the platform-neutral rendered output of an
// interaction: message content with the embedded state token, plus the
// interactive controls laid out in rows. The surrounding platform glue
// turns these into whatever UI objects the chat platform expects.
package render

import (
	"fmt"
	"strings"
	"time"
)

// Style is a presentation hint for a control
type Style string

const (
	StylePrimary   Style = "primary"
	StyleSecondary Style = "secondary"
	StyleSuccess   Style = "success"
	StyleDanger    Style = "danger"
)

// Control is one interactive element. ID is the control id the platform
// echoes back when the control is activated.
type Control struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Style    Style  `json:"style"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Message is the full rendered response to an interaction
type Message struct {
	Content   string      `json:"content"`
	Controls  [][]Control `json:"controls,omitempty"`
	Ephemeral bool        `json:"ephemeral,omitempty"`
}

// Row is a convenience constructor for one row of controls
func Row(controls ...Control) []Control {
	return controls
}

// Ephemeral builds a short-lived message visible only to the acting
// player, used for rejections and transient notices
func Ephemeral(content string) *Message {
	return &Message{Content: content, Ephemeral: true}
}

// FormatDuration renders a duration in whole units down to seconds,
// e.g. "1d 3h 25m 1s", "4m 2s", "0s"
func FormatDuration(d time.Duration) string {
	t := int64(d.Seconds())
	var parts []string
	if t >= 86400 {
		parts = append(parts, fmt.Sprintf("%dd", t/86400))
		t %= 86400
	}
	if t >= 3600 {
		parts = append(parts, fmt.Sprintf("%dh", t/3600))
		t %= 3600
	}
	if t >= 60 {
		parts = append(parts, fmt.Sprintf("%dm", t/60))
		t %= 60
	}
	if t > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", t))
	}
	return strings.Join(parts, " ")
}
