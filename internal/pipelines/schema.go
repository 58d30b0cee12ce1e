package pipelines

import (
	"encoding/json"
	"strings"

	"github.com/harrison/advisor/internal/models"
)

// MarketResearchData is the structured payload the market research task
// must produce.
type MarketResearchData struct {
	TargetDemographics string `json:"target_demographics"`
	CompetitorAnalysis string `json:"competitor_analysis"`
	KeyFindings        string `json:"key_findings"`
}

// MarketResearchSchema validates and canonicalizes market research
// output. Models occasionally wrap JSON in a markdown code fence even
// when told not to; the fence is stripped before parsing, but anything
// else malformed is an error.
type MarketResearchSchema struct{}

func (MarketResearchSchema) Name() string { return "market_research" }

func (MarketResearchSchema) Normalize(raw string) (string, error) {
	text := stripCodeFence(raw)

	var data MarketResearchData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return "", &models.ValidationError{Field: "market_research", Message: "output is not valid JSON: " + err.Error()}
	}

	missing := make([]string, 0, 3)
	if strings.TrimSpace(data.TargetDemographics) == "" {
		missing = append(missing, "target_demographics")
	}
	if strings.TrimSpace(data.CompetitorAnalysis) == "" {
		missing = append(missing, "competitor_analysis")
	}
	if strings.TrimSpace(data.KeyFindings) == "" {
		missing = append(missing, "key_findings")
	}
	if len(missing) > 0 {
		return "", &models.ValidationError{Field: "market_research", Message: "missing required fields: " + strings.Join(missing, ", ")}
	}

	canonical, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", &models.ValidationError{Field: "market_research", Message: "re-encoding failed: " + err.Error()}
	}
	return string(canonical), nil
}

func stripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
