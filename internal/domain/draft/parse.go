package draft

import (
	"strconv"
	"strings"

	"github.com/hale/groundwork/internal/domain/model"
)

// fallbackAttachmentLabel is used when a line has neither label nor URL text.
const fallbackAttachmentLabel = "Attachment"

// ParseScore parses score text entered in the editor. Non-numeric text
// coerces to 0 instead of failing.
func ParseScore(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseActionsText splits newline-delimited action text into a list,
// dropping blank lines.
func ParseActionsText(text string) []string {
	actions := []string{}
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			actions = append(actions, trimmed)
		}
	}
	return actions
}

// FormatActionsText joins actions one per line for text-area binding.
func FormatActionsText(actions []string) string {
	return strings.Join(actions, "\n")
}

// ParseAttachmentsText parses one attachment per non-blank line, splitting
// on the first "|". The label defaults to the URL, or a literal placeholder
// when both sides are empty.
func ParseAttachmentsText(text string) []model.Attachment {
	attachments := []model.Attachment{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, url := line, ""
		if idx := strings.Index(line, "|"); idx >= 0 {
			label = line[:idx]
			url = strings.TrimSpace(line[idx+1:])
		}
		label = strings.TrimSpace(label)
		if label == "" {
			if url != "" {
				label = url
			} else {
				label = fallbackAttachmentLabel
			}
		}
		attachments = append(attachments, model.Attachment{Label: label, URL: url})
	}
	return attachments
}

// FormatAttachmentsText serializes attachments one per line as "label | url",
// omitting the URL part when absent.
func FormatAttachmentsText(attachments []model.Attachment) string {
	lines := make([]string, len(attachments))
	for i, a := range attachments {
		if a.URL == "" {
			lines[i] = a.Label
		} else {
			lines[i] = a.Label + " | " + a.URL
		}
	}
	return strings.Join(lines, "\n")
}
