package dto

type ContentResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Category       string  `json:"category"`
	Output         string  `json:"output"`
	Status         string  `json:"status"`
	Feedback       *string `json:"feedback,omitempty"`
	RevisionOf     *string `json:"revision_of,omitempty"`
	RevisionNumber int     `json:"revision_number"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type HistoryResponse struct {
	Items []ContentResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type StyleProfileResponse struct {
	CompanyID        string   `json:"company_id"`
	Tone             string   `json:"tone"`
	AvgWordCount     int      `json:"avg_word_count"`
	Vocabulary       []string `json:"vocabulary"`
	CommonPhrases    []string `json:"common_phrases"`
	PreferredFormats []string `json:"preferred_formats"`
	Summary          string   `json:"summary"`
}
