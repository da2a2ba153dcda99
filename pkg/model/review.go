package model

import "time"

type Review struct {
	ID           int       `json:"id"`
	MovieID      int       `json:"movie_id" validate:"required,gt=0"`
	ReviewerName string    `json:"reviewer_name" validate:"required,min=2,max=50"`
	Rating       float64   `json:"rating" validate:"required,min=1,max=10"`
	Comment      string    `json:"comment" validate:"required,min=10,max=500"`
	CreatedAt    time.Time `json:"created_at"`
}
