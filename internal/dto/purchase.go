package dto

import "time"

type PurchaseRequestDTO struct {
	LessonID string  `json:"lessonId" example:"7d7e3a1f-4b68-4f07-9d3b-2c3f5f6a8b90"`
	Price    float64 `json:"price"    example:"19.99"`
}

type PurchaseResponseDTO struct {
	SessionID string `json:"sessionId" example:"cs_test_a1b2c3"`
	URL       string `json:"url"       example:"https://checkout.stripe.com/c/pay/cs_test_a1b2c3"`
}

type CheckPurchaseRequestDTO struct {
	LessonID  string `json:"lessonId"  example:"7d7e3a1f-4b68-4f07-9d3b-2c3f5f6a8b90"`
	SessionID string `json:"sessionId,omitempty" example:"cs_test_a1b2c3"`
}

type CheckPurchaseResponseDTO struct {
	HasAccess      bool       `json:"hasAccess"      example:"true"`
	PurchaseStatus string     `json:"purchaseStatus" example:"completed"`
	PurchaseDate   *time.Time `json:"purchaseDate,omitempty"`
	Message        string     `json:"message,omitempty" example:"purchase status updated to completed"`
}

type PurchaseHistoryResponseDTO struct {
	ID        string    `json:"id"        example:"b7a9e3f2-1c2d-4e5f-8a9b-0c1d2e3f4a5b"`
	LessonID  string    `json:"lessonId"  example:"7d7e3a1f-4b68-4f07-9d3b-2c3f5f6a8b90"`
	Status    string    `json:"status"    example:"completed"`
	Amount    float64   `json:"amount"    example:"19.99"`
	CreatedAt time.Time `json:"createdAt" example:"2024-11-02T15:04:05Z"`
}

type EarningsSummaryResponseDTO struct {
	Total   float64 `json:"total"   example:"212.5"`
	Pending float64 `json:"pending" example:"42.5"`
	Paid    float64 `json:"paid"    example:"170"`
}

type WebhookResponseDTO struct {
	Received bool `json:"received" example:"true"`
}
