package usecases

import (
	"fmt"
	"strings"

	"github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
)

// Tool names an AI flow whose invocations are charged against the usage quota.
type Tool string

const (
	ToolTranslate         Tool = "translate"
	ToolKeywords          Tool = "keywords"
	ToolMatchAnalysis     Tool = "match-analysis"
	ToolSearch            Tool = "search"
	ToolTranscribeSummary Tool = "transcribe-summary"
)

const defaultKeywordCount = 10

var allTools = []Tool{
	ToolTranslate,
	ToolKeywords,
	ToolMatchAnalysis,
	ToolSearch,
	ToolTranscribeSummary,
}

// Tools returns every supported tool in a stable order.
func Tools() []Tool {
	out := make([]Tool, len(allTools))
	copy(out, allTools)
	return out
}

// ParseTool resolves a tool name from a route parameter.
func ParseTool(name string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range allTools {
		if t == known {
			return t, nil
		}
	}
	return "", errors.NewNotFoundError("unknown AI tool", name)
}

func (t Tool) String() string {
	return string(t)
}

// buildPrompt validates the tool-specific fields and renders the instruction sent to the model.
func buildPrompt(tool Tool, req dto.RunToolRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", errors.NewValidationError("text is required")
	}

	switch tool {
	case ToolTranslate:
		lang := strings.TrimSpace(req.TargetLanguage)
		if lang == "" {
			return "", errors.NewValidationError("target_language is required for translate")
		}
		return fmt.Sprintf(
			"Translate the following text into %s. Reply with the translation only.\n\n%s",
			lang, text,
		), nil

	case ToolKeywords:
		n := req.MaxItems
		if n == 0 {
			n = defaultKeywordCount
		}
		return fmt.Sprintf(
			"Extract at most %d SEO keywords from the following text. Reply with one keyword per line.\n\n%s",
			n, text,
		), nil

	case ToolMatchAnalysis:
		stats := strings.TrimSpace(req.Reference)
		if stats == "" {
			return "", errors.NewValidationError("reference is required for match-analysis")
		}
		return fmt.Sprintf(
			"Analyse the sports match below using the supplied form and statistics. "+
				"Predict the result, give a confidence from 0 to 100, then explain the prediction "+
				"in a short paragraph covering recent form, head-to-head record and key players.\n\n"+
				"Match:\n%s\n\nForm and statistics:\n%s",
			text, stats,
		), nil

	case ToolSearch:
		return fmt.Sprintf(
			"You are the search assistant of a sports news and match prediction site. "+
				"Answer the reader's query in two or three sentences, then name the kinds of "+
				"articles, previews or predictions on the site that cover it.\n\nQuery: %s",
			text,
		), nil

	case ToolTranscribeSummary:
		return fmt.Sprintf(
			"Summarize the following transcript in a short paragraph, then list the action items.\n\n%s",
			text,
		), nil

	default:
		return "", errors.NewNotFoundError("unknown AI tool", tool.String())
	}
}
