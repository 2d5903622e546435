package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/filemgr"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProfile returns the authenticated user's profile.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile models.UserProfileResponse
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, profile, "", nil)
}

// UpdateProfile edits the user's own display fields. Phone stays fixed; it
// is the login key.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name   *string `json:"name"`
		Age    *int    `json:"age"`
		Gender *string `json:"gender"`
		Email  *string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.Age != nil {
		if *input.Age < 0 || *input.Age > 150 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid age")
			return
		}
		update["age"] = *input.Age
	}
	if input.Gender != nil {
		update["gender"] = *input.Gender
	}
	if input.Email != nil {
		if *input.Email != "" && !utils.ValidEmail(*input.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		update["email"] = *input.Email
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.UserProfileResponse
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Profile updated", nil)
}

// UploadPicture stores a profile photo with a thumbnail.
func UploadPicture(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Error parsing form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image upload failed")
		return
	}

	origName, _, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityUser, 100)
	if err != nil {
		log.Println("UploadPicture save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save image")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"image": origName}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"image": origName}, "Picture updated", nil)
}
