package model

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
	Completed   bool   `json:"completed"`
}
