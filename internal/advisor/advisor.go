// FilePath: internal/advisor/advisor.go

// Package advisor produces inspection commentary. It asks an external
// text-generation service first and falls back to the deterministic
// rule set when the call fails; hive status computation never waits on
// it.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bkeeper/hub/internal/config"
	"github.com/bkeeper/hub/internal/metrics"
	"github.com/bkeeper/hub/internal/models"
	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

// Analysis is the advisor's verdict on one inspection
type Analysis struct {
	Observations       []string `json:"observations"`
	Recommendations    []string `json:"recommendations"`
	Status             string   `json:"status"`
	PriorityActions    []string `json:"priority_actions"`
	NextInspectionDays int      `json:"next_inspection_days"`
}

// Client calls the text-generation service
type Client struct {
	http  *resty.Client
	model string
}

// NewClient creates an advisor client from config
func NewClient(cfg config.AdvisorConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey)
	return &Client{http: http, model: cfg.Model}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze returns commentary for an inspection. Any failure falls back
// to BasicAnalysis; the returned Analysis is never nil.
func (c *Client) Analyze(ctx context.Context, hiveName string, insp *models.Inspection) *Analysis {
	analysis, err := c.callService(ctx, hiveName, insp)
	if err != nil {
		nuts.L.Warnf("[Advisor] Falling back to rule-based analysis: %v", err)
		return BasicAnalysis(insp)
	}
	return analysis
}

func (c *Client) callService(ctx context.Context, hiveName string, insp *models.Inspection) (*Analysis, error) {
	prompt := buildPrompt(hiveName, insp)
	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: "Du är en erfaren biodlarexpert som ger praktiska råd baserat på inspektionsdata."},
				{Role: "user", Content: prompt},
			},
			Temperature: 0.7,
			MaxTokens:   1000,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("advisor service returned %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("advisor returned no choices")
	}
	var analysis Analysis
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("advisor returned unparseable analysis: %w", err)
	}
	return &analysis, nil
}

func buildPrompt(hiveName string, insp *models.Inspection) string {
	queenSeen := "Osäker"
	if insp.QueenSeen != nil {
		if *insp.QueenSeen {
			queenSeen = "Ja"
		} else {
			queenSeen = "Nej"
		}
	}
	varroa := "Ej mätt"
	if insp.VarroaPerDay != nil {
		varroa = fmt.Sprintf("%.1f", *insp.VarroaPerDay)
	}
	return fmt.Sprintf(`Analysera denna biodlarinspektionsdata och ge konkreta iakttagelser och rekommendationer på svenska:

Kupa: %s
Datum: %s
Väder: %s
Yngelramar: %d/%d
Drottning sedd: %s
Temperament: %s
Varroa/dag: %s

Ge svar i följande JSON-format:
{"observations": [], "recommendations": [], "status": "excellent|good|warning|critical", "priority_actions": [], "next_inspection_days": 14}`,
		hiveName, insp.Date, insp.Weather,
		insp.BroodFrames, insp.TotalFrames,
		queenSeen, insp.Temperament, varroa)
}

// BasicAnalysis is the deterministic fallback, built on the same
// metrics the hive status cache uses.
func BasicAnalysis(insp *models.Inspection) *Analysis {
	analysis := &Analysis{
		Observations:    []string{},
		Recommendations: []string{},
		PriorityActions: []string{},
	}
	status := metrics.ClassifyStatus(insp.QueenSeen, metrics.InspectionLevel(insp), insp.Temperament)

	if insp.QueenSeen != nil && !*insp.QueenSeen {
		analysis.Observations = append(analysis.Observations, "Drottning ej sedd - kan vara drottninglös")
		analysis.Recommendations = append(analysis.Recommendations, "Kontrollera för drottningceller eller lägg till ny drottning")
		analysis.PriorityActions = append(analysis.PriorityActions, "Drottningkontroll inom 3 dagar")
	}
	if insp.VarroaPerDay != nil && *insp.VarroaPerDay > 5 {
		analysis.Observations = append(analysis.Observations,
			fmt.Sprintf("Hög varroabelastning (%.1f/dag)", *insp.VarroaPerDay))
		analysis.Recommendations = append(analysis.Recommendations, "Genomför varroabehandling omedelbart")
		analysis.PriorityActions = append(analysis.PriorityActions, "Varroabehandling inom 1 vecka")
	}
	if insp.TotalFrames > 0 && float64(insp.BroodFrames) < float64(insp.TotalFrames)*0.3 {
		analysis.Observations = append(analysis.Observations, "Låg yngelproduktion")
		analysis.Recommendations = append(analysis.Recommendations, "Kontrollera drottningens äggläggning och näringstillgång")
	}

	analysis.Status = string(status)
	switch status {
	case models.HiveStatusCritical:
		analysis.NextInspectionDays = 3
	case models.HiveStatusWarning:
		analysis.NextInspectionDays = 7
	default:
		analysis.NextInspectionDays = 14
	}
	return analysis
}
