package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"nodedex/internal/adapters/tui/styles"
	"nodedex/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderBadges renders the marker badges for a node: trigger, AI tool, and
// community origin with its verification state.
func RenderBadges(n domain.NodeSummary) string {
	var parts []string
	if n.IsTrigger {
		parts = append(parts, styles.BadgeTrigger.Render("[trigger]"))
	}
	if n.IsAITool {
		parts = append(parts, styles.BadgeAI.Render("[ai]"))
	}
	if n.Community != nil {
		if n.Community.Verified {
			parts = append(parts, styles.BadgeVerified.Render("[community ✓]"))
		} else {
			parts = append(parts, styles.BadgeCommunity.Render("[community]"))
		}
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
