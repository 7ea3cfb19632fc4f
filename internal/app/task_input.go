package app

type CreateTaskInput struct {
	UserID   string
	Title    string
	Priority string
	DueDate  string
	DueTime  string
}

type GetTaskInput struct {
	ID string
}

// UpdateTaskInput leaves nil fields unchanged. An empty DueDate or DueTime
// clears it.
type UpdateTaskInput struct {
	ID       string
	Title    *string
	Status   *string
	Priority *string
	DueDate  *string
	DueTime  *string
}
