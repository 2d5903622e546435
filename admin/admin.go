package admin

import (
	"context"
	"net/http"
	"time"

	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAppointments returns every appointment for the back office, newest
// first. Optional ?cancelled=true/false filter.
func GetAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	switch r.URL.Query().Get("cancelled") {
	case "true":
		filter["cancelled"] = true
	case "false":
		filter["cancelled"] = false
	}

	cursor, err := db.AppointmentCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve appointments")
		return
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading appointments")
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.SendResponse(w, http.StatusOK, appointments, "", nil)
}

// GetDashboard returns the counters shown on the admin landing page plus the
// five most recent appointments.
func GetDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doctorCount, err := db.DoctorCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not count doctors")
		return
	}
	userCount, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not count users")
		return
	}
	appointmentCount, err := db.AppointmentCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not count appointments")
		return
	}

	cursor, err := db.AppointmentCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"date": -1}).SetLimit(5))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve appointments")
		return
	}
	defer cursor.Close(ctx)

	var latest []models.Appointment
	if err := cursor.All(ctx, &latest); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading appointments")
		return
	}
	if latest == nil {
		latest = []models.Appointment{}
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"doctors":            doctorCount,
		"patients":           userCount,
		"appointments":       appointmentCount,
		"latestAppointments": latest,
	}, "", nil)
}
