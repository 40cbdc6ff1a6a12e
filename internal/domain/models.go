package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Profile struct {
	ID               int       `db:"id"`
	UserID           int       `db:"user_id"`
	Credits          int       `db:"credits"`
	SubscriptionTier string    `db:"subscription_tier"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type CreditTransaction struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Amount      int       `db:"amount"`
	Type        string    `db:"type"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Generation struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Prompt      string    `db:"prompt"`
	ImageURL    string    `db:"image_url"`
	Count       int       `db:"count"`
	CreditsUsed int       `db:"credits_used"`
	CreatedAt   time.Time `db:"created_at"`
}

type Payment struct {
	ID              int       `db:"id"`
	UserID          int       `db:"user_id"`
	StripePaymentID string    `db:"stripe_payment_id"`
	StripeSessionID string    `db:"stripe_session_id"`
	Amount          int64     `db:"amount"`
	Currency        string    `db:"currency"`
	Status          string    `db:"status"`
	Product         string    `db:"product"`
	CreditsAdded    int       `db:"credits_added"`
	CustomerEmail   string    `db:"customer_email"`
	CreatedAt       time.Time `db:"created_at"`
}

type UnbilledGeneration struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Prompt    string    `db:"prompt"`
	Count     int       `db:"count"`
	Reason    string    `db:"reason"`
	Settled   bool      `db:"settled"`
	CreatedAt time.Time `db:"created_at"`
}
