package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

// Generator is the part of genai.Models the matcher uses.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiMatcher struct {
	gen          Generator
	model        string
	catalog      catalog.Source
	enableSearch bool
}

type GeminiOption func(*GeminiMatcher)

// WithGoogleSearch toggles search grounding.
func WithGoogleSearch(enabled bool) GeminiOption {
	return func(m *GeminiMatcher) { m.enableSearch = enabled }
}

// WithCatalog replaces the reference catalog embedded in the prompt.
func WithCatalog(src catalog.Source) GeminiOption {
	return func(m *GeminiMatcher) { m.catalog = src }
}

func NewGeminiMatcher(gen Generator, model string, opts ...GeminiOption) *GeminiMatcher {
	if model == "" {
		model = DefaultGeminiModel
	}
	m := &GeminiMatcher{
		gen:          gen,
		model:        model,
		catalog:      catalog.Static(catalog.Bundled()),
		enableSearch: true,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// NewGeminiClient creates the genai client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

func (m *GeminiMatcher) FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
	ref, err := m.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference catalog: %w", err)
	}

	prompt, err := BuildPrompt(p, ref)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
	if m.enableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := m.gen.GenerateContent(ctx, m.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return []models.ScholarshipMatch{}, nil
	}
	return DecodeMatches(resp.Text())
}

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

// ResponseSchema is the structured-output schema requested from the model.
func ResponseSchema() *genai.Schema {
	scholarship := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":                  str(""),
			"title":               str(""),
			"provider":            str(""),
			"amount":              str(""),
			"deadline":            str(""),
			"eligibilityCriteria": str(""),
			"description":         str(""),
			"category":            str("One of: 'Government', 'Private'"),
			"scope":               str("One of: 'State', 'National', 'Global'"),
			"link":                str(""),
			"targetCommunity":     str("Specific caste or community this scholarship targets, if any."),
		},
		Required: []string{"id", "title", "provider", "amount", "deadline", "eligibilityCriteria", "description", "category", "link", "scope"},
	}
	match := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scholarshipId":       str(""),
			"matchScore":          {Type: genai.TypeNumber},
			"reasoning":           str(""),
			"localCurrencyAmount": str(""),
		},
		Required: []string{"scholarshipId", "matchScore", "reasoning", "localCurrencyAmount"},
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"scholarship": scholarship,
				"match":       match,
			},
			Required: []string{"scholarship", "match"},
		},
	}
}

// BuildPrompt renders the advisor prompt for p with the reference catalog.
func BuildPrompt(p models.UserProfile, ref []models.Scholarship) (string, error) {
	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	refJSON, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode catalog: %w", err)
	}

	deadline := p.ProfileDeadline
	if deadline == "" {
		deadline = "not set"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "As an expert financial aid advisor for women, perform an exhaustive real-time search for ALL available and upcoming scholarships worldwide for the following user profile.\n\n")
	fmt.Fprintf(&b, "User Profile:\n%s\n\n", profileJSON)
	fmt.Fprintf(&b, "Local Scholarship Database (Prioritize these if they match the user's profile):\n%s\n\n", refJSON)
	fmt.Fprintf(&b, "Tasks:\n")
	fmt.Fprintf(&b, "1. Use the Local Scholarship Database above AND Google Search to find high-quality scholarships (Government, Private, NGO, University-specific).\n")
	fmt.Fprintf(&b, "2. Prioritize:\n")
	fmt.Fprintf(&b, "   - Scholarships currently accepting applications.\n")
	fmt.Fprintf(&b, "   - Upcoming scholarships (those opening in the next 6-12 months).\n")
	fmt.Fprintf(&b, "   - Scholarships specifically for the user's gender (%s), year of study (%s), background, or field of study.\n", p.Gender, p.YearOfStudy)
	fmt.Fprintf(&b, "   - Local opportunities in %s and %s.\n", p.Country, p.State)
	fmt.Fprintf(&b, "   - Global opportunities (USA, UK, Europe, etc.) that accept international students from %s.\n", p.Country)
	fmt.Fprintf(&b, "   - If the user has set a profile completion deadline (%s), prioritize scholarships with deadlines that follow this date.\n", deadline)
	fmt.Fprintf(&b, "3. For each scholarship provide: a unique ID, Title, Provider, Amount in original currency (approximate when unknown, e.g. \"Approx. $5,000\"), ")
	fmt.Fprintf(&b, "Local Currency Amount converted to %s currency, Deadline (e.g. \"Dec 15, 2026\", \"Upcoming - Opens July\" or \"Rolling\"), ", p.Country)
	fmt.Fprintf(&b, "Eligibility Criteria, a brief description, Category (Government or Private), Scope (State means specific to %s, National means specific to %s, Global means international), ", p.State, p.Country)
	fmt.Fprintf(&b, "a direct and active application link, a match score (0-100) and the reasoning for the match.\n\n")
	fmt.Fprintf(&b, "Return at least 20-25 results as a JSON array of objects.\n")
	return b.String(), nil
}
