package handler

// Task request/response types. Field names mirror the web client's contract,
// which is why they are camelCase while the rest of the codebase is not.

type taskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"     validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status"      validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"`
	OwnerID     string `json:"ownerId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}
