package protocol

import (
	"errors"
	"strings"
)

// ErrEmptyCommand is returned for blank input lines.
var ErrEmptyCommand = errors.New("empty command")

// Command is one parsed line of the text protocol.
type Command struct {
	Name string // upper-cased verb: "PATH", "NEAR", ...
	Args []string
}

// Parse splits a raw line into a verb and its arguments. Surrounding
// whitespace, including a trailing "\r\n", is ignored.
func Parse(raw string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := &Command{
		Name: strings.ToUpper(parts[0]),
		Args: make([]string, 0, len(parts)-1),
	}
	cmd.Args = append(cmd.Args, parts[1:]...)
	return cmd, nil
}
