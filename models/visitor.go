package models

import "time"

// Visitor is an anonymous shopper identified only by a server-minted UUID.
type Visitor struct {
	VisitorID string    `json:"visitorid" bson:"visitorid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	LastSeen  time.Time `json:"last_seen" bson:"last_seen"`
}
