package lostfound

type CreateItemRequest struct {
	Type        string `json:"type" validate:"required,oneof=lost found"`
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
}

type UpdateItemRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=2"`
	Description string `json:"description,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Resolved    *bool  `json:"resolved,omitempty"`
}
