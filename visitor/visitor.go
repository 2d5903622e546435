package visitor

import (
	"context"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/models"
	"medibook/rdx"
	"medibook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const sessionCacheTTL = 30 * time.Minute

// Resolve returns the visitor id for the request, minting and persisting a
// new one when the header is absent or names an unknown visitor. The bool
// reports whether a new identity was created. Minting is a write, which is
// why the session endpoint sits behind the rate limiter.
func Resolve(ctx context.Context, r *http.Request) (string, bool, error) {
	visitorID := utils.GetVisitorIDFromRequest(r)
	if visitorID != "" {
		// redis front cache saves a Mongo round-trip for active sessions
		if _, err := rdx.RdxGet("visitor:" + visitorID); err == nil {
			return visitorID, false, nil
		}

		var existing models.Visitor
		err := db.VisitorCollection.FindOne(ctx, bson.M{"visitorid": visitorID}).Decode(&existing)
		if err == nil {
			_, _ = db.VisitorCollection.UpdateOne(ctx,
				bson.M{"visitorid": visitorID},
				bson.M{"$set": bson.M{"last_seen": time.Now()}},
			)
			cacheSession(visitorID)
			return visitorID, false, nil
		}
		if err != mongo.ErrNoDocuments {
			return "", false, err
		}
		// unknown id falls through to minting
	}

	newID := uuid.New().String()
	now := time.Now()
	if _, err := db.VisitorCollection.InsertOne(ctx, models.Visitor{
		VisitorID: newID,
		CreatedAt: now,
		LastSeen:  now,
	}); err != nil {
		return "", false, err
	}

	// empty cart up front so cart reads never miss
	if _, err := db.CartCollection.InsertOne(ctx, models.Cart{
		CartID:     "c" + utils.GenerateRandomString(12),
		VisitorID:  newID,
		Items:      []models.CartItem{},
		TotalPrice: 0,
		UpdatedAt:  now,
	}); err != nil {
		return "", false, err
	}

	cacheSession(newID)
	return newID, true, nil
}

func cacheSession(visitorID string) {
	if err := rdx.SetWithExpiry("visitor:"+visitorID, "1", sessionCacheTTL); err != nil {
		log.Printf("visitor session cache failed: %v", err)
	}
}

// CreateSession handles POST /api/visitor/session.
func CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	visitorID, created, err := Resolve(ctx, r)
	if err != nil {
		log.Println("CreateSession resolve error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	status := http.StatusOK
	message := "Session resumed"
	if created {
		status = http.StatusCreated
		message = "Session created"
	}
	utils.SendResponse(w, status, map[string]string{"visitorid": visitorID}, message, nil)
}
