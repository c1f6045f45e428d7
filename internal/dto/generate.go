package dto

// Brief carries the optional creative parameters of a generation request.
// Tone and Length are 0..4 scales; nil means "not specified".
type Brief struct {
	Audience string `json:"audience,omitempty"`
	Goal     string `json:"goal,omitempty"`
	CTA      string `json:"cta,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Tone     *int   `json:"tone,omitempty"`
	Length   *int   `json:"length,omitempty"`
	Platform string `json:"platform,omitempty"`
}

type GenerateRequest struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Category  string `json:"category"`
	Brief     *Brief `json:"brief,omitempty"`
}

type RegenerateRequest struct {
	Brief *Brief `json:"brief,omitempty"`
}

type RejectRequest struct {
	Feedback string `json:"feedback"`
	Severity string `json:"severity"`
}

type AnalyzeStyleRequest struct {
	UserID string `json:"user_id,omitempty"`
}
