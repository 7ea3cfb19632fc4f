package app

import "context"

type TaskUseCase interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (TaskOutput, error)
	GetTask(ctx context.Context, input GetTaskInput) (TaskOutput, error)
	UpdateTask(ctx context.Context, input UpdateTaskInput) (TaskOutput, error)
}
