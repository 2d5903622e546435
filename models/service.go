package models

import "time"

type Service struct {
	ServiceID   string    `json:"serviceid" bson:"serviceid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Duration    int       `json:"duration,omitempty" bson:"duration,omitempty"` // minutes
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
