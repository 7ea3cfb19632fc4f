package handler

type CreateTaskRequest struct {
	UserID   string `json:"user_id" binding:"required,max=128"`
	Title    string `json:"title" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate  string `json:"due_date"`
	DueTime  string `json:"due_time"`
}

type UpdateTaskRequest struct {
	Title    *string `json:"title"`
	Status   *string `json:"status" binding:"omitempty,oneof=pending completed"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate  *string `json:"due_date"`
	DueTime  *string `json:"due_time"`
}
