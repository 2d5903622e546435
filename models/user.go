package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	Password      string    `json:"-" bson:"password"`
	Age           int       `json:"age,omitempty" bson:"age,omitempty"`
	Gender        string    `json:"gender,omitempty" bson:"gender,omitempty"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	Role          []string  `json:"role" bson:"role"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// UserProfileResponse is the public shape of a user profile.
type UserProfileResponse struct {
	UserID string `json:"userid" bson:"userid"`
	Name   string `json:"name" bson:"name"`
	Phone  string `json:"phone" bson:"phone"`
	Age    int    `json:"age,omitempty" bson:"age,omitempty"`
	Gender string `json:"gender,omitempty" bson:"gender,omitempty"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
	Image  string `json:"image,omitempty" bson:"image,omitempty"`
}
