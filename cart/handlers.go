package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// identityFilter picks the cart key for the caller. An authenticated user
// wins over a visitor header when both are present.
func identityFilter(r *http.Request) bson.M {
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		return bson.M{"userid": userID}
	}
	if visitorID := utils.GetVisitorIDFromRequest(r); visitorID != "" {
		return bson.M{"visitorid": visitorID}
	}
	return nil
}

func loadCart(ctx context.Context, filter bson.M) (models.Cart, error) {
	var c models.Cart
	err := db.CartCollection.FindOne(ctx, filter).Decode(&c)
	if err == mongo.ErrNoDocuments {
		c = models.Cart{
			CartID: "c" + utils.GenerateRandomString(12),
			Items:  []models.CartItem{},
		}
		if userID, ok := filter["userid"].(string); ok {
			c.UserID = userID
		}
		if visitorID, ok := filter["visitorid"].(string); ok {
			c.VisitorID = visitorID
		}
		return c, nil
	}
	return c, err
}

// saveCart recomputes the total and upserts the whole document. Concurrent
// mutations on the same cart are last-write-wins; carts are single-owner in
// practice so no document versioning is applied.
func saveCart(ctx context.Context, filter bson.M, c models.Cart) error {
	c.TotalPrice = ComputeTotal(c.Items)
	c.UpdatedAt = time.Now()
	_, err := db.CartCollection.UpdateOne(ctx, filter,
		bson.M{"$set": c},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetCart returns the caller's cart, an empty one if nothing is stored yet.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := identityFilter(r)
	if filter == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "No identity")
		return
	}

	c, err := loadCart(ctx, filter)
	if err != nil {
		log.Println("GetCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.SendResponse(w, http.StatusOK, c, "", nil)
}

// AddToCart adds a service line, locking its unit price at add time.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		ServiceID string `json:"serviceid"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ServiceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Service id is required")
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	filter := identityFilter(r)
	if filter == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "No identity")
		return
	}

	// Unknown service ids are rejected rather than accepted as-is.
	var svc models.Service
	err := db.ServiceCollection.FindOne(ctx, bson.M{"serviceid": input.ServiceID}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown service")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not look up service")
		return
	}
	if !svc.Available {
		utils.RespondWithError(w, http.StatusConflict, "Service is not available")
		return
	}

	c, err := loadCart(ctx, filter)
	if err != nil {
		log.Println("AddToCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	c.Items = AddItem(c.Items, svc.ServiceID, svc.Name, svc.Price, input.Quantity)

	if err := saveCart(ctx, filter, c); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	c.TotalPrice = ComputeTotal(c.Items)
	utils.SendResponse(w, http.StatusCreated, c, "Added to cart", nil)
}

func RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		ServiceID string `json:"serviceid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ServiceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Service id is required")
		return
	}

	filter := identityFilter(r)
	if filter == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "No identity")
		return
	}

	c, err := loadCart(ctx, filter)
	if err != nil {
		log.Println("RemoveFromCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	c.Items = RemoveItem(c.Items, input.ServiceID)

	if err := saveCart(ctx, filter, c); err != nil {
		log.Println("RemoveFromCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	c.TotalPrice = ComputeTotal(c.Items)
	utils.SendResponse(w, http.StatusOK, c, "Removed from cart", nil)
}

func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := identityFilter(r)
	if filter == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "No identity")
		return
	}

	c, err := loadCart(ctx, filter)
	if err != nil {
		log.Println("ClearCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	c.Items = []models.CartItem{}

	if err := saveCart(ctx, filter, c); err != nil {
		log.Println("ClearCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	c.TotalPrice = 0
	utils.SendResponse(w, http.StatusOK, c, "Cart cleared", nil)
}

// MergeCart folds the visitor cart named by the X-Visitor-ID header into the
// authenticated user's cart, then empties the visitor cart. Called after
// login so anonymous shopping survives authentication.
func MergeCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	visitorID := utils.GetVisitorIDFromRequest(r)
	if visitorID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Visitor id is required")
		return
	}

	var visitorCart models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"visitorid": visitorID}).Decode(&visitorCart)
	if err == mongo.ErrNoDocuments || (err == nil && len(visitorCart.Items) == 0) {
		// nothing to merge
		userFilter := bson.M{"userid": userID}
		c, err := loadCart(ctx, userFilter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
			return
		}
		utils.SendResponse(w, http.StatusOK, c, "Nothing to merge", nil)
		return
	}
	if err != nil {
		log.Println("MergeCart visitor load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	userFilter := bson.M{"userid": userID}
	userCart, err := loadCart(ctx, userFilter)
	if err != nil {
		log.Println("MergeCart user load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	userCart.Items = MergeItems(userCart.Items, visitorCart.Items)

	if err := saveCart(ctx, userFilter, userCart); err != nil {
		log.Println("MergeCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to merge cart")
		return
	}

	visitorCart.Items = []models.CartItem{}
	if err := saveCart(ctx, bson.M{"visitorid": visitorID}, visitorCart); err != nil {
		log.Println("MergeCart visitor clear error:", err)
	}

	userCart.TotalPrice = ComputeTotal(userCart.Items)
	utils.SendResponse(w, http.StatusOK, userCart, "Cart merged", nil)
}
