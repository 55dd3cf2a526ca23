package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractReason classifies why pulling a structured response out of the
// model's free-text reply failed. Callers branch on this instead of on an
// opaque error string.
type ExtractReason string

const (
	// ReasonNoJSON means the reply contains no locatable JSON object.
	ReasonNoJSON ExtractReason = "no_json_found"
	// ReasonInvalidJSON means delimiters were found but the substring
	// between them does not decode.
	ReasonInvalidJSON ExtractReason = "json_invalid"
	// ReasonMissingFields means the object decoded but lacks required
	// fields of the analysis shape.
	ReasonMissingFields ExtractReason = "missing_required_fields"
)

// ExtractError is the typed failure result of response extraction.
type ExtractError struct {
	Reason ExtractReason
	Detail string
}

func (e *ExtractError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("extract analysis: %s", e.Reason)
	}
	return fmt.Sprintf("extract analysis: %s: %s", e.Reason, e.Detail)
}

// extractAnalysis locates the JSON object in the model's reply and decodes
// it into an AnalysisResponse. The locator is the first '{' to the last '}'
// of the reply; models that wrap the object in prose containing braces, or
// return multiple objects, fail with ReasonInvalidJSON.
func extractAnalysis(reply string) (*AnalysisResponse, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ExtractError{Reason: ReasonNoJSON}
	}

	raw := reply[start : end+1]

	var out AnalysisResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &ExtractError{Reason: ReasonInvalidJSON, Detail: err.Error()}
	}

	if err := checkRequiredFields(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func checkRequiredFields(a *AnalysisResponse) error {
	var missing []string
	if strings.TrimSpace(a.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(a.Insights) == 0 {
		missing = append(missing, "insights")
	}
	if len(a.RecommendedRoutes) == 0 {
		missing = append(missing, "recommendedRoutes")
	}
	if strings.TrimSpace(a.MarketConditions) == "" {
		missing = append(missing, "marketConditions")
	}
	if len(missing) > 0 {
		return &ExtractError{Reason: ReasonMissingFields, Detail: strings.Join(missing, ", ")}
	}
	return nil
}
