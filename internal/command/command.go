// Package command describes the slash-command surface: the option tree
// delivered with an inbound command, and the catalog of commands the
// service registers with the chat platform.
package command

// Option is one node of an inbound command's option tree. Leaf options
// carry a Value; group options carry nested Options.
type Option struct {
	Name    string   `json:"name"`
	Value   string   `json:"value,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// Find returns the direct child option with the given name
func Find(opts []Option, name string) (Option, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// OptionSpec declares one option of a registered command. Group
// options nest their children under Options; string options may
// restrict input to Choices.
type OptionSpec struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Required    bool         `json:"required,omitempty"`
	Choices     []string     `json:"choices,omitempty"`
	Options     []OptionSpec `json:"options,omitempty"`
}

// Info declares one registered command
type Info struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Options     []OptionSpec `json:"options,omitempty"`
}
