package analyzer

import (
	"fmt"

	"foliogen/pkg/models"
)

const extractionSystemPrompt = `You are a precise CV data extractor. Your job is to extract ONLY what exists in the CV text you are given. You copy facts verbatim and never invent, infer, or embellish.`

const extractionRules = `## CRITICAL ANTI-HALLUCINATION RULES:
1. EXACT TEXT ONLY: Copy titles, names, dates EXACTLY as written in the CV
2. NO INVENTION: Do NOT invent years of experience, degrees, or titles
3. NO ASSUMPTIONS: If the CV says "Junior Game Developer", output "Junior Game Developer" - NOT "Senior" or "Lead"
4. DATES: Use exact date ranges from the CV. If the CV says "2023-Present", use that exactly
5. PROJECTS: Use the EXACT project names as they appear
6. MISSING DATA: Use null for fields with no corresponding source text. DO NOT GUESS.`

const extractionSchema = `{
    "personal": {
        "name": "EXACT full name from CV",
        "title": "EXACT job title from CV (no modifications)",
        "tagline": "Brief tagline based on actual CV content",
        "bio": "2-3 sentences using ONLY facts from the CV",
        "email": "exact email or null",
        "phone": "exact phone or null",
        "location": "exact location or null"
    },
    "links": {
        "linkedin": "exact LinkedIn URL or null",
        "github": "exact GitHub URL or null",
        "website": "exact website URL or null"
    },
    "experience": [
        {
            "company": "EXACT company name",
            "role": "EXACT job title from CV",
            "period": "EXACT date range from CV",
            "description": "Summary using ONLY CV content",
            "highlights": ["actual achievements from the CV"]
        }
    ],
    "projects": [
        {
            "name": "EXACT project name",
            "description": "Description using ONLY CV content",
            "tech_stack": ["technologies mentioned in the CV"],
            "link": "project URL if in CV, else null",
            "type": "Game/Web/App based on CV"
        }
    ],
    "education": [
        {
            "institution": "EXACT school name",
            "degree": "EXACT degree/program name",
            "period": "EXACT date range"
        }
    ],
    "skills": {
        "languages": ["programming languages from the CV"],
        "frameworks": ["frameworks from the CV"],
        "tools": ["tools from the CV"],
        "specialties": ["specialties from the CV"]
    },
    "certifications": ["EXACT certification names"],
    "languages_spoken": ["languages from the CV"]
}`

// buildExtractionMessages builds the Phase-1 conversation: a fixed
// instruction set emphasizing literal transcription, with the raw CV text
// embedded in the user turn.
func buildExtractionMessages(rawText string) []models.Message {
	user := fmt.Sprintf(`## RAW CV TEXT (THIS IS YOUR ONLY SOURCE OF TRUTH):
---
%s
---

%s

## EXTRACTION TASK:
Extract the CV into JSON with exactly this structure. Use null for missing fields.

%s

IMPORTANT: Output ONLY the JSON. No explanations. Use EXACT text from the CV.`, rawText, extractionRules, extractionSchema)

	return []models.Message{
		{Role: models.RoleSystem, Content: extractionSystemPrompt},
		{Role: models.RoleUser, Content: user},
	}
}
