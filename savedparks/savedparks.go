package savedparks

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"parkscout/db"
	"parkscout/models"
	"parkscout/mq"
	"parkscout/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewRecord builds a saved-park record with the normalization invariants
// applied: key lowercased and trimmed, label defaulting to the key.
func NewRecord(userID, key, park string) models.SavedPark {
	key = utils.NormalizeCode(key)
	park = strings.TrimSpace(park)
	if park == "" {
		park = key
	}
	return models.SavedPark{
		RecordID:  utils.GetUUID(),
		UserID:    userID,
		Key:       key,
		Park:      park,
		CreatedAt: time.Now(),
	}
}

// List returns the user's saved parks, most recent first.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.SavedParksCollection.Find(r.Context(), bson.M{"userid": userID}, opts)
	if err != nil {
		log.Printf("Error fetching saved parks: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch saved parks")
		return
	}
	defer cursor.Close(r.Context())

	rows := []models.SavedPark{}
	if err := cursor.All(r.Context(), &rows); err != nil {
		log.Printf("Error decoding saved parks: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode saved parks")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Save creates a saved-park record. Saving an already-saved code is success,
// not an error: one record per (user, key) always.
func Save(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var input struct {
		Key  string `json:"key"`
		Park string `json:"park"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	record := NewRecord(userID, input.Key, input.Park)
	if record.Key == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "key required")
		return
	}

	err := db.SavedParksCollection.FindOne(r.Context(), bson.M{"userid": userID, "key": record.Key}).Err()
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save park")
		return
	}

	if _, err := db.SavedParksCollection.InsertOne(r.Context(), record); err != nil {
		// The unique (userid, key) index catches the race between the
		// existence check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
			return
		}
		log.Printf("Error inserting saved park: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save park")
		return
	}

	mq.Emit(r.Context(), "park-saved", models.Event{
		EntityType: "savedpark", EntityID: record.Key, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// RemoveOne deletes one saved park by key.
func RemoveOne(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	key := utils.NormalizeCode(ps.ByName("key"))
	if _, err := db.SavedParksCollection.DeleteOne(r.Context(), bson.M{"userid": userID, "key": key}); err != nil {
		log.Printf("Error deleting saved park: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete saved park")
		return
	}

	mq.Emit(r.Context(), "park-unsaved", models.Event{
		EntityType: "savedpark", EntityID: key, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Clear deletes all of the user's saved parks.
func Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	if _, err := db.SavedParksCollection.DeleteMany(r.Context(), bson.M{"userid": userID}); err != nil {
		log.Printf("Error clearing saved parks: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear saved parks")
		return
	}

	mq.Emit(r.Context(), "park-unsaved", models.Event{
		EntityType: "savedpark", EntityID: "*", UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
