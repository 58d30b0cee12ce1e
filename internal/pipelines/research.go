package pipelines

import (
	"github.com/harrison/advisor/internal/llm"
	"github.com/harrison/advisor/internal/models"
)

// Research returns the web research pipeline built around a single
// target site. The researcher role retrieves passages from the site
// through the injected site-search tool; the analyst restructures the
// findings without touching the network. Both roles run at the
// retrieval temperature to keep output grounded in the source.
func Research(siteSearch models.Tool) *models.Pipeline {
	researcher := &models.Role{
		Name:      "Website Research Specialist",
		Goal:      "Extract accurate, relevant information about the research topic from the target website.",
		Backstory: `You are a meticulous researcher who digs through website content to find precise answers.
You quote and paraphrase only what the source actually says, and you clearly flag
anything the source does not cover.`,
		Tools:       []models.Tool{siteSearch},
		Temperature: llm.RetrievalTemperature,
		Memory:      true,
		MaxRetries:  3,
	}

	analyst := &models.Role{
		Name: "Research Analyst & Report Writer",
		Goal: "Organize research findings into a clear, well-structured report.",
		Backstory: `You turn raw research notes into polished reports. You structure information
logically, separate facts from interpretation, and never invent content that was
not in the notes you were given.`,
		Temperature: llm.RetrievalTemperature,
	}

	gather := &models.Task{
		Name: "primary_research",
		Role: researcher,
		Description: `Conduct a COMPREHENSIVE research analysis on the topic '{research_topic}' using the provided website.

RESEARCH METHODOLOGY:
1. **Systematic Content Scanning**: Search through all relevant sections of the website
2. **Topic-Focused Analysis**: Identify all information related to '{research_topic}'
3. **Relevance Assessment**: Evaluate the importance and relevance of each finding
4. **Context Analysis**: Understand how the information fits within the broader context

SPECIFIC RESEARCH REQUIREMENTS:
- Extract ALL relevant information about '{research_topic}'
- Identify key facts, statistics, quotes, and data points
- Note the source sections/pages where information was found
- Assess the credibility and recency of information
- Look for related subtopics and supporting information
- Identify any gaps or limitations in available information

WEBSITE TO ANALYZE: {website_url}
RESEARCH TOPIC: '{research_topic}'

EXPECTED FINDINGS SHOULD INCLUDE:
- Main concepts and definitions related to '{research_topic}'
- Key facts, statistics, and data points
- Company/organization perspectives on '{research_topic}'
- Products, services, or solutions related to '{research_topic}'
- Historical context or background information
- Current status, trends, or developments
- Future plans, goals, or projections
- Any supporting evidence or case studies

Be thorough and systematic in your research approach.`,
		ExpectedOutput: `A comprehensive research dataset containing:
- All relevant information found about the topic
- Source locations for each piece of information
- Relevance assessment for each finding
- Contextual analysis and connections between findings
- Identification of information gaps or limitations`,
	}

	analyze := &models.Task{
		Name:    "structure_analysis",
		Role:    analyst,
		Context: []string{"primary_research"},
		Description: `Transform the research findings into a WELL-STRUCTURED, COMPREHENSIVE REPORT.

Using the research data gathered about '{research_topic}' from {website_url}, create a structured analysis that includes:

## 1. EXECUTIVE SUMMARY (150-200 words)
- Concise overview of key findings
- Main insights and conclusions
- Strategic implications or significance

## 2. KEY FINDINGS TABLE
Create a structured table with:
| Finding # | Key Finding | Relevance (1-10) | Source Section | Supporting Details |
|-----------|-------------|------------------|----------------|-------------------|

## 3. DETAILED ANALYSIS SECTIONS

### A. Primary Information Analysis
- Main facts and data about '{research_topic}'
- Direct quotes or statements from the website
- Statistical information or metrics

### B. Contextual Analysis
- How '{research_topic}' fits within the organization's broader context
- Related initiatives, products, or services
- Strategic positioning or approach

### C. Insights and Implications
- What the information reveals about '{research_topic}'
- Trends, patterns, or notable aspects
- Potential impact or significance

## 4. RESEARCH METHODOLOGY
- Sections of website analyzed
- Search approach and techniques used
- Coverage assessment (comprehensive vs limited)

## 5. LIMITATIONS AND GAPS
- Information not available on the website
- Areas requiring additional research
- Potential biases or limitations in source material

## 6. RECOMMENDATIONS
- Suggested follow-up research areas
- Additional sources to consult
- Key questions for further investigation

## 7. APPENDIX
- Complete list of website sections reviewed
- Relevant URLs or page references
- Additional supporting details

FORMATTING REQUIREMENTS:
- Use clear headings and subheadings
- Include bullet points for easy reading
- Add tables where appropriate
- Ensure logical flow and organization
- Include specific examples and evidence`,
		ExpectedOutput: `A comprehensive, well-structured research report with:
- Clear executive summary
- Organized key findings in tabular format
- Detailed analysis sections with supporting evidence
- Methodology explanation
- Identified limitations and research gaps
- Actionable recommendations
- Professional formatting with headers, bullets, and tables`,
	}

	return &models.Pipeline{
		Name:  "web-researcher",
		Kind:  models.KindResearch,
		Roles: []*models.Role{researcher, analyst},
		Tasks: []*models.Task{gather, analyze},
	}
}
