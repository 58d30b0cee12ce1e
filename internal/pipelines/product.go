package pipelines

import (
	"github.com/harrison/advisor/internal/llm"
	"github.com/harrison/advisor/internal/models"
)

// Side-output filenames for the product launch pipeline. The executor
// collects these in the run result; the session layer decides where
// they land on disk.
const (
	MarketResearchFile = "market_research.json"
	ContentPlanFile    = "content_plan.txt"
	OutreachReportFile = "outreach_report.md"
)

// Product returns the product launch pipeline. The analyst and writer
// roles carry live web tools, so callers inject them; pass stubs in
// tests to keep runs hermetic.
func Product(search, scrape models.Tool) *models.Pipeline {
	analyst := &models.Role{
		Name:        "Market Research Analyst",
		Goal:        "Analyze the product and its market to identify the target audience and competitive landscape.",
		Backstory:   `You are an expert market analyst with a knack for identifying market trends, target demographics, and competitive advantages for new products.`,
		Tools:       []models.Tool{search, scrape},
		Temperature: llm.DefaultTemperature,
	}

	writer := &models.Role{
		Name:        "Creative Content Writer",
		Goal:        "Create compelling marketing copy and content for the product launch campaign.",
		Backstory:   `You are a creative wordsmith who crafts engaging marketing content that resonates with target audiences and drives conversions.`,
		Tools:       []models.Tool{search},
		Temperature: llm.DefaultTemperature,
	}

	prSpecialist := &models.Role{
		Name:        "Public Relations Specialist",
		Goal:        "Identify media outlets and craft outreach strategies for maximum product launch coverage.",
		Backstory:   `You are a PR expert with connections across various media outlets and a talent for crafting newsworthy stories.`,
		Temperature: llm.DefaultTemperature,
	}

	marketResearch := &models.Task{
		Name: "market_research",
		Role: analyst,
		Description: `Research the market for {product_name}: {product_description}.
Identify the target demographics, analyze at least three competitors, and summarize
the key findings that should shape the launch strategy. Use your web tools to ground
the analysis in current information.`,
		ExpectedOutput: `A JSON object with exactly these keys:
- target_demographics: description of the ideal customer segments
- competitor_analysis: comparison of at least three competing products
- key_findings: the most important insights for the launch`,
		OutputSchema: MarketResearchSchema{},
		OutputFile:   MarketResearchFile,
	}

	contentCreation := &models.Task{
		Name:    "content_creation",
		Role:    writer,
		Context: []string{"market_research"},
		Description: `Using the market research, write the launch content plan for {product_name}.
Include a product announcement blog post outline, three social media posts, and an
email announcement draft. Tailor the tone to the identified target demographics.`,
		ExpectedOutput: `A complete content plan with a blog post outline, three social media posts, and an email announcement draft.`,
		OutputFile:     ContentPlanFile,
	}

	prOutreach := &models.Task{
		Name:    "pr_outreach",
		Role:    prSpecialist,
		Context: []string{"content_creation"},
		Description: `Create a PR outreach plan for the launch of {product_name}. List relevant
media outlets and journalists to contact, draft a press release summary, and propose
a pitch angle for each outlet grounded in the launch content.`,
		ExpectedOutput: `A PR outreach report with target outlets, a press release summary, and tailored pitch angles, formatted in markdown.`,
		OutputFile:     OutreachReportFile,
	}

	return &models.Pipeline{
		Name:  "product-launcher",
		Kind:  models.KindProduct,
		Roles: []*models.Role{analyst, writer, prSpecialist},
		Tasks: []*models.Task{marketResearch, contentCreation, prOutreach},
	}
}
