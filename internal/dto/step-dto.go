package dto

type StepCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Order       int     `json:"order"`
}

type StepUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}
