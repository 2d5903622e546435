package services

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
)

// GetServices lists the catalog for the storefront, optional ?category= filter.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}

	cursor, err := db.ServiceCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve services")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Service
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading services")
		return
	}
	if list == nil {
		list = []models.Service{}
	}

	utils.SendResponse(w, http.StatusOK, list, "", nil)
}

func GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceId")
	var svc models.Service
	err := db.ServiceCollection.FindOne(ctx, bson.M{"serviceid": serviceID}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load service")
		return
	}

	utils.SendResponse(w, http.StatusOK, svc, "", nil)
}

// AddService creates a catalog entry from a multipart form. Admin only.
func AddService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Error parsing form data")
		return
	}

	svc := models.Service{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if svc.Name == "" || svc.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and category are required")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price")
		return
	}
	svc.Price = price

	if d := r.FormValue("duration"); d != "" {
		duration, err := strconv.Atoi(d)
		if err != nil || duration < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid duration")
			return
		}
		svc.Duration = duration
	}

	if file, header, err := r.FormFile("image"); err == nil {
		origName, _, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityService, 200)
		if err != nil {
			log.Println("AddService image save error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Could not save image")
			return
		}
		svc.Image = origName
	}

	svc.ServiceID = "s" + utils.GenerateRandomString(10)
	svc.Available = true
	svc.CreatedAt = time.Now()

	if _, err := db.ServiceCollection.InsertOne(ctx, svc); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add service")
		return
	}

	utils.SendResponse(w, http.StatusCreated, svc, "Service added", nil)
}

// UpdateService edits catalog fields. A price change does not touch carts
// that already hold the service: cart lines keep their add-time price.
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceId")

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Duration    *int     `json:"duration"`
		Available   *bool    `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Category != nil {
		update["category"] = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid price")
			return
		}
		update["price"] = *input.Price
	}
	if input.Duration != nil {
		update["duration"] = *input.Duration
	}
	if input.Available != nil {
		update["available"] = *input.Available
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res := db.ServiceCollection.FindOneAndUpdate(ctx,
		bson.M{"serviceid": serviceID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Service
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Service updated", nil)
}

// DeleteService removes a catalog entry. Carts holding the service keep
// their locked lines; only new adds are affected.
func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceId")
	res, err := db.ServiceCollection.DeleteOne(ctx, bson.M{"serviceid": serviceID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Service deleted", nil)
}
