package models

import "time"

// CartItem is one service line in a cart. Price is the unit price captured
// when the line was first added; later catalog changes do not touch it.
type CartItem struct {
	ServiceID string  `json:"serviceid" bson:"serviceid"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Cart holds the pending service lines for one identity. Exactly one of
// UserID or VisitorID is set.
type Cart struct {
	CartID     string     `json:"cartid" bson:"cartid"`
	UserID     string     `json:"userid,omitempty" bson:"userid,omitempty"`
	VisitorID  string     `json:"visitorid,omitempty" bson:"visitorid,omitempty"`
	Items      []CartItem `json:"items" bson:"items"`
	TotalPrice float64    `json:"totalprice" bson:"totalprice"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}
