package models

// Personal holds the identity block extracted from a CV. Every non-empty
// value must be a literal substring of the source document text.
type Personal struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Tagline  string `json:"tagline,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience represents a single work experience entry
type Experience struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Period      string   `json:"period"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Project represents a project entry from the CV
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
	Link        string   `json:"link,omitempty"`
	Type        string   `json:"type,omitempty"`
}

// Education represents a single education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period,omitempty"`
}

// Skills groups extracted skills the way the extraction prompt asks for them
type Skills struct {
	Languages   []string `json:"languages,omitempty"`
	Frameworks  []string `json:"frameworks,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// CV is the structured record produced by the analysis phase. Fields with no
// corresponding source text stay empty - extraction, not invention.
type CV struct {
	Personal        Personal          `json:"personal"`
	Links           map[string]string `json:"links,omitempty"`
	Experience      []Experience      `json:"experience,omitempty"`
	Projects        []Project         `json:"projects,omitempty"`
	Education       []Education       `json:"education,omitempty"`
	Skills          Skills            `json:"skills"`
	Certifications  []string          `json:"certifications,omitempty"`
	LanguagesSpoken []string          `json:"languages_spoken,omitempty"`
}

// IsEmpty reports whether the record carries no extracted data at all
func (c *CV) IsEmpty() bool {
	return c.Personal == Personal{} &&
		len(c.Links) == 0 &&
		len(c.Experience) == 0 &&
		len(c.Projects) == 0 &&
		len(c.Education) == 0 &&
		len(c.Skills.Languages) == 0 &&
		len(c.Skills.Frameworks) == 0 &&
		len(c.Skills.Tools) == 0 &&
		len(c.Skills.Specialties) == 0 &&
		len(c.Certifications) == 0 &&
		len(c.LanguagesSpoken) == 0
}
