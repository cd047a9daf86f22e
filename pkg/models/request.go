package models

// GeneratePortfolioRequest represents the request body for the portfolio
// generation endpoint
type GeneratePortfolioRequest struct {
	FilePath   string `json:"file_path" validate:"required"`
	BrainModel string `json:"brain_model,omitempty"`
	CoderModel string `json:"coder_model,omitempty"`
}
