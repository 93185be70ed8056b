package models

import "time"

// Product is a catalog item. The owner is fixed at creation and never
// reassigned; mutations are restricted to the owner.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int64     `json:"stock"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Creator   *Creator  `json:"creator,omitempty"`
}

// Creator is the owner summary joined into product reads.
type Creator struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
