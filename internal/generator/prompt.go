package generator

import (
	"fmt"

	"foliogen/pkg/models"
)

const generationSystemPrompt = `You are an expert frontend developer who builds striking single-file portfolio websites. You write complete, valid, self-contained HTML documents and you NEVER invent facts about the person the portfolio is for.`

const generationDesignBrief = `## DESIGN REQUIREMENTS:
- Single self-contained HTML file: all CSS and JS inline or from CDNs, no build step
- Tailwind CSS via CDN (https://cdn.tailwindcss.com)
- AOS scroll animations via CDN (https://unpkg.com/aos@2.3.1/dist/aos.css and aos.js)
- Lucide icons via CDN (https://unpkg.com/lucide@latest) with lucide.createIcons() at the end of body
- Dark theme: near-black background (#0a0a0a or similar), high-contrast text, one vivid accent color
- Bento-grid layout for the main sections: asymmetric cards on a CSS grid
- Sections in order: hero (name, title, tagline), about/bio, experience timeline, projects grid, skills, education, contact
- Omit any section whose data is missing or empty - do NOT render placeholder content
- Smooth scrolling, hover transitions on cards, AOS fade/slide animations on section entry
- Responsive: single column on mobile, grid on desktop
- Initialize AOS with: AOS.init({ duration: 800, once: true })`

const generationRules = `## CRITICAL CONTENT RULES:
1. Use ONLY the data in the JSON. Every name, title, date, company, and project comes from the JSON verbatim
2. Do NOT invent metrics, testimonials, client names, or achievements
3. Do NOT add sections for data the JSON does not contain
4. Contact links (email, phone, socials) only for fields present in the JSON
5. If a field is null or absent, leave it out entirely`

// buildGenerationMessages builds the Phase-2 conversation: the design brief
// and content rules, with the canonical JSON record embedded in the user turn.
func buildGenerationMessages(cvJSON string) []models.Message {
	user := fmt.Sprintf(`Build a portfolio website for the person described by this JSON. The JSON is your ONLY source of content.

## CV DATA:
%s

%s

%s

## OUTPUT:
Respond with the COMPLETE HTML document, starting with <!DOCTYPE html> and ending with </html>. No explanations before or after.`, cvJSON, generationDesignBrief, generationRules)

	return []models.Message{
		{Role: models.RoleSystem, Content: generationSystemPrompt},
		{Role: models.RoleUser, Content: user},
	}
}
