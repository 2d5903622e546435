package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/models"
	"medibook/mq"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotField is the dotted path into the doctor's booked-slot map for one day.
func slotField(dateKey string) string {
	return "slots_booked." + dateKey
}

// reserveSlotFilter matches the doctor only while the requested time is still
// absent from the day's booked array, so a concurrent booking of the same
// slot cannot match.
func reserveSlotFilter(docID, dateKey, slotTime string) bson.M {
	return bson.M{
		"docid":            docID,
		"available":        true,
		slotField(dateKey): bson.M{"$ne": slotTime},
	}
}

func reserveSlotUpdate(dateKey, slotTime string) bson.M {
	return bson.M{"$push": bson.M{slotField(dateKey): slotTime}}
}

// releaseSlotUpdate removes a reserved time, used on cancel and on booking
// rollback.
func releaseSlotUpdate(dateKey, slotTime string) bson.M {
	return bson.M{"$pull": bson.M{slotField(dateKey): slotTime}}
}

// GetDoctorSlots returns the rolling seven-day calendar for one doctor.
func GetDoctorSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := ps.ByName("docId")
	if docID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Doctor id is required")
		return
	}

	var doctor models.Doctor
	err := db.DoctorCollection.FindOne(ctx, bson.M{"docid": docID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load doctor")
		return
	}
	if !doctor.Available {
		utils.RespondWithError(w, http.StatusConflict, "Doctor is not taking appointments")
		return
	}

	week := GenerateWeek(time.Now(), doctor.SlotsBooked)
	utils.SendResponse(w, http.StatusOK, map[string]any{
		"docid": docID,
		"slots": week,
	}, "", nil)
}

// BookAppointment reserves a slot with a single conditional update so two
// concurrent requests for the same (doctor, date, time) can never both
// succeed: the filter matches only while the time string is absent from the
// booked array, and the matched document is updated atomically.
func BookAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		DocID    string `json:"docid"`
		SlotDate string `json:"slotdate"`
		SlotTime string `json:"slottime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.DocID == "" || input.SlotDate == "" || input.SlotTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Doctor, date and time are required")
		return
	}
	if !validSlotTime(input.SlotTime) {
		utils.RespondWithError(w, http.StatusBadRequest, "Time is not on the booking grid")
		return
	}
	if !withinHorizon(input.SlotDate, time.Now()) {
		utils.RespondWithError(w, http.StatusBadRequest, "Date is outside the booking window")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	var doctor models.Doctor
	err := db.DoctorCollection.FindOne(ctx, bson.M{"docid": input.DocID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load doctor")
		return
	}
	if !doctor.Available {
		utils.RespondWithError(w, http.StatusConflict, "Doctor is not taking appointments")
		return
	}

	// compare-and-append: fails cleanly if someone else took the slot first
	res, err := db.DoctorCollection.UpdateOne(ctx,
		reserveSlotFilter(input.DocID, input.SlotDate, input.SlotTime),
		reserveSlotUpdate(input.SlotDate, input.SlotTime),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reserve slot")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Slot is no longer available")
		return
	}

	appointment := models.Appointment{
		AppointmentID: "a" + utils.GenerateRandomDigitString(16),
		UserID:        userID,
		DocID:         doctor.DocID,
		SlotDate:      input.SlotDate,
		SlotTime:      input.SlotTime,
		UserData: models.UserSnapshot{
			Name:  user.Name,
			Phone: user.Phone,
			Image: user.Image,
		},
		DocData: models.DoctorSnapshot{
			Name:    doctor.Name,
			Image:   doctor.Image,
			Fees:    doctor.Fees,
			Address: doctor.Address,
		},
		Amount: doctor.Fees,
		Date:   time.Now().Unix(),
	}

	if _, err := db.AppointmentCollection.InsertOne(ctx, appointment); err != nil {
		// roll the reservation back so the slot is not leaked
		_, _ = db.DoctorCollection.UpdateOne(ctx,
			bson.M{"docid": input.DocID},
			releaseSlotUpdate(input.SlotDate, input.SlotTime),
		)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	mq.Emit(ctx, "appointment-created", models.Index{
		EntityType: "appointment",
		EntityId:   appointment.AppointmentID,
		ItemId:     doctor.DocID,
		ItemType:   "doctor",
	})
	notifySlotChange(doctor.DocID, input.SlotDate, input.SlotTime, "booked")

	utils.SendResponse(w, http.StatusCreated, appointment, "Appointment booked", nil)
}

// ListUserAppointments returns the caller's appointments, newest first.
func ListUserAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cursor, err := db.AppointmentCollection.Find(ctx, bson.M{"userid": userID},
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

// cancelAppointment marks the appointment cancelled and frees its slot on the
// doctor record. If asUser is non-empty the appointment must belong to that
// user.
func cancelAppointment(ctx context.Context, appointmentID, asUser string) (int, string) {
	filter := bson.M{"appointmentid": appointmentID}
	if asUser != "" {
		filter["userid"] = asUser
	}

	var appt models.Appointment
	err := db.AppointmentCollection.FindOne(ctx, filter).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return http.StatusNotFound, "Appointment not found"
	}
	if err != nil {
		return http.StatusInternalServerError, "Could not load appointment"
	}
	if appt.Cancelled {
		return http.StatusConflict, "Appointment already cancelled"
	}

	if _, err := db.AppointmentCollection.UpdateOne(ctx,
		bson.M{"appointmentid": appointmentID},
		bson.M{"$set": bson.M{"cancelled": true}},
	); err != nil {
		return http.StatusInternalServerError, "Failed to cancel appointment"
	}

	// free the reserved slot so doctor capacity is not silently lost
	if _, err := db.DoctorCollection.UpdateOne(ctx,
		bson.M{"docid": appt.DocID},
		releaseSlotUpdate(appt.SlotDate, appt.SlotTime),
	); err != nil {
		log.Println("cancelAppointment slot release error:", err)
	}

	mq.Emit(ctx, "appointment-cancelled", models.Index{
		EntityType: "appointment",
		EntityId:   appt.AppointmentID,
		ItemId:     appt.DocID,
		ItemType:   "doctor",
	})
	notifySlotChange(appt.DocID, appt.SlotDate, appt.SlotTime, "freed")

	return http.StatusOK, ""
}

// CancelAppointment handles the user-facing cancel.
func CancelAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		AppointmentID string `json:"appointmentid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Appointment id is required")
		return
	}

	if status, msg := cancelAppointment(ctx, input.AppointmentID, userID); msg != "" {
		utils.RespondWithError(w, status, msg)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Appointment cancelled", nil)
}

// AdminCancelAppointment soft-cancels any appointment and releases its slot.
func AdminCancelAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		AppointmentID string `json:"appointmentid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Appointment id is required")
		return
	}

	if status, msg := cancelAppointment(ctx, input.AppointmentID, ""); msg != "" {
		utils.RespondWithError(w, status, msg)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Appointment cancelled", nil)
}

// ListDoctorAppointments returns the authenticated doctor's appointments.
func ListDoctorAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := utils.GetUserIDFromRequest(r)
	if docID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cursor, err := db.AppointmentCollection.Find(ctx, bson.M{"docid": docID},
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

// CompleteAppointment lets the doctor mark their own appointment done.
func CompleteAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := utils.GetUserIDFromRequest(r)
	if docID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		AppointmentID string `json:"appointmentid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Appointment id is required")
		return
	}

	res := db.AppointmentCollection.FindOneAndUpdate(ctx,
		bson.M{"appointmentid": input.AppointmentID, "docid": docID, "cancelled": false},
		bson.M{"$set": bson.M{"iscompleted": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Appointment
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Appointment completed", nil)
}

// CancelOwnAppointment lets the doctor cancel an appointment on their own
// calendar; the slot is released like any other cancel.
func CancelOwnAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := utils.GetUserIDFromRequest(r)
	if docID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		AppointmentID string `json:"appointmentid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Appointment id is required")
		return
	}

	var appt models.Appointment
	err := db.AppointmentCollection.FindOne(ctx,
		bson.M{"appointmentid": input.AppointmentID, "docid": docID}).Decode(&appt)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	if status, msg := cancelAppointment(ctx, input.AppointmentID, ""); msg != "" {
		utils.RespondWithError(w, status, msg)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Appointment cancelled", nil)
}
