package models

import "time"

// WebhookEvent is the platform event envelope posted to /webhook-events.
type WebhookEvent struct {
	Event     string       `json:"event"`
	CompanyID string       `json:"company_id"`
	Payload   WebhookOrder `json:"payload"`
}

type WebhookOrder struct {
	CartID string            `json:"cart_id"`
	Items  []WebhookCartItem `json:"items"`
}

type WebhookCartItem struct {
	ProductUID int    `json:"product_uid"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// CartKeywordRecord is the append-only behavioral document written to Mongo
// for each cart/order webhook. Insert-only, never updated.
type CartKeywordRecord struct {
	CompanyID string    `json:"company_id" bson:"company_id"`
	CartID    string    `json:"cart_id" bson:"cart_id"`
	Event     string    `json:"event" bson:"event"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
