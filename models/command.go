package models

import (
	"github.com/samber/mo"
	"github.com/slack-go/slack"
)

// CommandKind classifies a dispatched slash command
type CommandKind string

const (
	CommandKindHelp    CommandKind = "help"
	CommandKindLink    CommandKind = "link"
	CommandKindUnlink  CommandKind = "unlink"
	CommandKindUnknown CommandKind = "unknown"
)

// CommandRequest represents a decoded slash command invocation
type CommandRequest struct {
	Text    string              // First value of the "text" field, empty when absent
	Payload SlashCommandPayload // Remaining form metadata, used for context only
}

// CommandResult represents the outcome of dispatching a slash command
type CommandResult struct {
	Kind  CommandKind
	Token string // Lowercased command token as typed by the user

	// Block is the reply block; None means an empty reply object.
	Block mo.Option[*slack.SectionBlock]

	// Pending is true when the command maps to a feature that is not implemented yet.
	Pending bool
}
