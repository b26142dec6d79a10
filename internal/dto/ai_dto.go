package dto

type PolishTextRequest struct {
	Text string `json:"text" validate:"required,min=1"`
	// Context selects the rewriting prompt: technical_diagnosis,
	// technical_issue, work_report or professional_note.
	Context string `json:"context" validate:"required,oneof=technical_diagnosis technical_issue work_report professional_note"`
}

type PolishTextResponse struct {
	Text string `json:"text"`
}
