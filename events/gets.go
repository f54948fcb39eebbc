package events

import (
	"context"
	"log"
	"net/http"
	"time"

	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetEvents lists events. The search/type/featured query params run through
// the filter engine after fetch so the predicate semantics stay in one place.
func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	list, err := utils.FindAndDecode[models.Event](ctx, db.EventsCollection, bson.M{}, opts)
	if err != nil {
		log.Println("GetEvents find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	q := r.URL.Query()
	filtered := FilterEvents(list, FilterOptions{
		SearchTerm:   q.Get("search"),
		Type:         q.Get("type"),
		FeaturedOnly: utils.ParseBool(q.Get("featured")),
	}, time.Now())

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"events":     filtered,
		"eventCount": len(filtered),
		"page":       skip/limit + 1,
		"limit":      limit,
	})
}

// GetEventTypes returns the distinct type vocabulary for the filter dropdown.
func GetEventTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := utils.FindAndDecode[models.Event](ctx, db.EventsCollection, bson.M{})
	if err != nil {
		log.Println("GetEventTypes find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"types": TypeOptions(list)})
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": ps.ByName("eventid")}).Decode(&event)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEventsCount returns the total number of stored events.
func GetEventsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.EventsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("GetEventsCount error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event count")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, count)
}
