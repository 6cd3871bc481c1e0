package dto

import "time"

type CreateLessonRequestDTO struct {
	Title       string  `json:"title"       example:"Kendama basics"`
	Description string  `json:"description" example:"Spike fundamentals for beginners"`
	Price       float64 `json:"price"       example:"19.99"`
}

type LessonResponseDTO struct {
	ID          string    `json:"id"          example:"7d7e3a1f-4b68-4f07-9d3b-2c3f5f6a8b90"`
	CreatorID   string    `json:"creatorId"   example:"a81bc81b-dead-4e5d-abff-90865d1e13b1"`
	Title       string    `json:"title"       example:"Kendama basics"`
	Description string    `json:"description" example:"Spike fundamentals for beginners"`
	Price       float64   `json:"price"       example:"19.99"`
	CreatedAt   time.Time `json:"createdAt"   example:"2024-11-02T15:04:05Z"`
}
