package models

import "time"

// Address is the doctor's practice address.
type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2,omitempty" bson:"line2,omitempty"`
}

type Doctor struct {
	DocID      string  `json:"docid" bson:"docid"`
	Name       string  `json:"name" bson:"name"`
	Email      string  `json:"email" bson:"email"`
	Password   string  `json:"-" bson:"password"`
	Speciality string  `json:"speciality" bson:"speciality"`
	Degree     string  `json:"degree" bson:"degree"`
	Experience string  `json:"experience" bson:"experience"`
	About      string  `json:"about,omitempty" bson:"about,omitempty"`
	Fees       float64 `json:"fees" bson:"fees"`
	Available  bool    `json:"available" bson:"available"`
	Image      string  `json:"image,omitempty" bson:"image,omitempty"`
	Address    Address `json:"address" bson:"address"`

	// SlotsBooked maps a date key ("20_1_2025") to the time strings
	// already reserved on that date.
	SlotsBooked map[string][]string `json:"slots_booked" bson:"slots_booked"`

	Services  []string  `json:"services,omitempty" bson:"services,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DoctorPublic strips credentials and booking internals for listing endpoints.
type DoctorPublic struct {
	DocID      string   `json:"docid" bson:"docid"`
	Name       string   `json:"name" bson:"name"`
	Speciality string   `json:"speciality" bson:"speciality"`
	Degree     string   `json:"degree" bson:"degree"`
	Experience string   `json:"experience" bson:"experience"`
	About      string   `json:"about,omitempty" bson:"about,omitempty"`
	Fees       float64  `json:"fees" bson:"fees"`
	Available  bool     `json:"available" bson:"available"`
	Image      string   `json:"image,omitempty" bson:"image,omitempty"`
	Address    Address  `json:"address" bson:"address"`
	Services   []string `json:"services,omitempty" bson:"services,omitempty"`
}
