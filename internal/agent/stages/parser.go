package stages

import (
	"strings"

	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// ExtractionCompleteMarker is the literal prefix a model reply must carry to
// signal that structured extraction succeeded.
const ExtractionCompleteMarker = "EXTRACTION_COMPLETE:"

// limit error snippet size when logging malformed replies
const maxReplySnippet = 200

// ParseExtractionReply parses a model reply from the extraction stage.
// A reply beginning with the completion marker is split on the first '|'
// into exactly two trimmed fields (event name, event date). A missing
// separator or an empty field is a recoverable condition: the reply is
// treated as extraction-incomplete, never as a failure.
func ParseExtractionReply(reply string) (name, date string, ok bool) {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, ExtractionCompleteMarker) {
		return "", "", false
	}

	rest := strings.TrimPrefix(trimmed, ExtractionCompleteMarker)
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		logx.Warn().
			Str("reply", safeSnippet(trimmed)).
			Msg("Completion marker without field separator, treating extraction as incomplete")
		return "", "", false
	}

	name = strings.TrimSpace(parts[0])
	date = strings.TrimSpace(parts[1])
	if name == "" || date == "" {
		logx.Warn().
			Str("reply", safeSnippet(trimmed)).
			Msg("Completion marker with empty field, treating extraction as incomplete")
		return "", "", false
	}
	return name, date, true
}

func safeSnippet(s string) string {
	if len(s) <= maxReplySnippet {
		return s
	}
	return s[:maxReplySnippet]
}
