package doctors

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"medibook/db"
	"medibook/filemgr"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// GetDoctors lists doctors for the storefront, optional ?speciality= filter.
func GetDoctors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if spec := r.URL.Query().Get("speciality"); spec != "" {
		filter["speciality"] = spec
	}

	cursor, err := db.DoctorCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve doctors")
		return
	}
	defer cursor.Close(ctx)

	var doctors []models.DoctorPublic
	if err := cursor.All(ctx, &doctors); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading doctors")
		return
	}
	if doctors == nil {
		doctors = []models.DoctorPublic{}
	}

	utils.SendResponse(w, http.StatusOK, doctors, "", nil)
}

func GetDoctor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := ps.ByName("docId")
	var doctor models.DoctorPublic
	err := db.DoctorCollection.FindOne(ctx, bson.M{"docid": docID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load doctor")
		return
	}

	utils.SendResponse(w, http.StatusOK, doctor, "", nil)
}

// AddDoctor creates a doctor record from a multipart form so the picture can
// ride along with the fields. Admin only.
func AddDoctor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Error parsing form data")
		return
	}

	doctor := models.Doctor{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Speciality: r.FormValue("speciality"),
		Degree:     r.FormValue("degree"),
		Experience: r.FormValue("experience"),
		About:      r.FormValue("about"),
		Address: models.Address{
			Line1: r.FormValue("address1"),
			Line2: r.FormValue("address2"),
		},
	}
	fees, err := strconv.ParseFloat(r.FormValue("fees"), 64)
	if err != nil || fees < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid fees")
		return
	}
	doctor.Fees = fees

	password := r.FormValue("password")
	if doctor.Name == "" || doctor.Email == "" || password == "" || doctor.Speciality == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.ValidEmail(doctor.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	// Email is the doctor's unique login key
	var existing models.Doctor
	err = db.DoctorCollection.FindOne(ctx, bson.M{"email": doctor.Email}).Decode(&existing)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Doctor already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	doctor.Password = string(hashed)
	doctor.DocID = "d" + utils.GenerateRandomString(10)
	doctor.Available = true
	doctor.SlotsBooked = map[string][]string{}
	doctor.CreatedAt = time.Now()

	if file, header, err := r.FormFile("image"); err == nil {
		origName, _, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityDoctor, 200)
		if err != nil {
			log.Println("AddDoctor image save error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Could not save image")
			return
		}
		doctor.Image = origName
	}

	if _, err := db.DoctorCollection.InsertOne(ctx, doctor); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add doctor")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"docid": doctor.DocID}, "Doctor added", nil)
}

// DeleteDoctor removes a doctor outright. Admin only.
func DeleteDoctor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := ps.ByName("docId")
	res, err := db.DoctorCollection.DeleteOne(ctx, bson.M{"docid": docID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Doctor deleted", nil)
}

// ToggleAvailability flips or sets whether the doctor takes new bookings.
func ToggleAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := ps.ByName("docId")

	var input struct {
		Available *bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Available == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Available flag is required")
		return
	}

	res := db.DoctorCollection.FindOneAndUpdate(ctx,
		bson.M{"docid": docID},
		bson.M{"$set": bson.M{"available": *input.Available}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.DoctorPublic
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Availability updated", nil)
}

// GetProfile returns the authenticated doctor's own record.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := utils.GetUserIDFromRequest(r)
	var doctor models.DoctorPublic
	err := db.DoctorCollection.FindOne(ctx, bson.M{"docid": docID}).Decode(&doctor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, doctor, "", nil)
}

// UpdateProfile lets the doctor edit the fields shown on the storefront.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docID := utils.GetUserIDFromRequest(r)

	var input struct {
		About     *string         `json:"about"`
		Fees      *float64        `json:"fees"`
		Address   *models.Address `json:"address"`
		Available *bool           `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if input.About != nil {
		update["about"] = *input.About
	}
	if input.Fees != nil {
		if *input.Fees < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid fees")
			return
		}
		update["fees"] = *input.Fees
	}
	if input.Address != nil {
		update["address"] = *input.Address
	}
	if input.Available != nil {
		update["available"] = *input.Available
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res := db.DoctorCollection.FindOneAndUpdate(ctx,
		bson.M{"docid": docID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.DoctorPublic
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Profile updated", nil)
}
