package utils

import (
	"strings"
)

// CommandDetectionResult represents the result of command detection
type CommandDetectionResult struct {
	Token string   // lowercased first word, empty when the text has none
	Args  []string // remaining words, original casing
}

// DetectCommand splits slash command text into its command token and arguments
func DetectCommand(text string) CommandDetectionResult {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return CommandDetectionResult{
			Token: "",
			Args:  nil,
		}
	}

	return CommandDetectionResult{
		Token: strings.ToLower(fields[0]),
		Args:  fields[1:],
	}
}
