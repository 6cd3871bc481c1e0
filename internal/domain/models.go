package domain

import "time"

type User struct {
	ID           string    `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Lesson struct {
	ID          string    `db:"id"`
	CreatorID   string    `db:"creator_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	CreatedAt   time.Time `db:"created_at"`
}

type Purchase struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	LessonID        string         `db:"lesson_id"`
	CreatorID       string         `db:"creator_id"`
	Amount          float64        `db:"amount"`
	PlatformFee     float64        `db:"platform_fee"`
	CreatorEarnings float64        `db:"creator_earnings"`
	FeePercentage   float64        `db:"fee_percentage"`
	StripeSessionID string         `db:"stripe_session_id"`
	PaymentIntentID string         `db:"payment_intent_id"`
	Status          string         `db:"status"`
	Metadata        map[string]any `db:"metadata"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type EarningsRecord struct {
	ID              string         `db:"id"`
	CreatorID       string         `db:"creator_id"`
	PaymentIntentID string         `db:"payment_intent_id"`
	Amount          float64        `db:"amount"`
	LessonID        string         `db:"lesson_id"`
	PurchaseID      string         `db:"purchase_id"`
	Status          string         `db:"status"`
	Metadata        map[string]any `db:"metadata"`
	CreatedAt       time.Time      `db:"created_at"`
}
