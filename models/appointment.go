package models

// UserSnapshot and DoctorSnapshot capture display data at booking time so an
// appointment stays readable even after the underlying records change.
type UserSnapshot struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

type DoctorSnapshot struct {
	Name    string  `json:"name" bson:"name"`
	Image   string  `json:"image,omitempty" bson:"image,omitempty"`
	Fees    float64 `json:"fees" bson:"fees"`
	Address Address `json:"address" bson:"address"`
}

type Appointment struct {
	AppointmentID string         `json:"appointmentid" bson:"appointmentid"`
	UserID        string         `json:"userid" bson:"userid"`
	DocID         string         `json:"docid" bson:"docid"`
	SlotDate      string         `json:"slotdate" bson:"slotdate"` // date key, e.g. "20_1_2025"
	SlotTime      string         `json:"slottime" bson:"slottime"` // e.g. "10:00 AM"
	UserData      UserSnapshot   `json:"userdata" bson:"userdata"`
	DocData       DoctorSnapshot `json:"docdata" bson:"docdata"`
	Amount        float64        `json:"amount" bson:"amount"`
	Date          int64          `json:"date" bson:"date"` // unix seconds at booking
	Cancelled     bool           `json:"cancelled" bson:"cancelled"`
	IsCompleted   bool           `json:"iscompleted" bson:"iscompleted"`
	Payment       bool           `json:"payment" bson:"payment"`
}
