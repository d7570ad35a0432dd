package messagebuilder

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/slack-go/slack"
)

// CommandDescriptor names a slash command and describes it for the help text
type CommandDescriptor struct {
	Name        string
	Description string
}

// availableCommands is rendered in declaration order.
var availableCommands = [...]CommandDescriptor{
	{Name: "help", Description: "displays the available commands"},
	{Name: "link", Description: "kicks off linking Slack and your account"},
	{Name: "unlink", Description: "unlinks your identity"},
}

// AvailableCommands returns a copy of the command registry
func AvailableCommands() []CommandDescriptor {
	commands := availableCommands
	return commands[:]
}

// BuildHelpText renders the help message, prefixed with an unknown-command line when one is given
func BuildHelpText(unknownCommand mo.Option[string]) string {
	var b strings.Builder

	if command, ok := unknownCommand.Get(); ok && command != "" {
		fmt.Fprintf(&b, "Unknown command: `%s`\n", command)
	}

	b.WriteString("Available Commands:\n")
	for i, command := range AvailableCommands() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• *%s* - %s", command.Name, command.Description)
	}

	return b.String()
}

// BuildHelpBlock renders the help message as a single mrkdwn section block
func BuildHelpBlock(unknownCommand mo.Option[string]) *slack.SectionBlock {
	text := slack.NewTextBlockObject(slack.MarkdownType, BuildHelpText(unknownCommand), false, false)
	return slack.NewSectionBlock(text, nil, nil)
}
