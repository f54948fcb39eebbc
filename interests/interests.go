// Package interests manages a participant's interest tags. Membership is a
// set: tags are lower-cased and deduplicated, and every mutation answers
// with the canonical stored list so clients resync instead of guessing.
package interests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetInterests(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID, ok := requireSelf(w, r, ps)
	if !ok {
		return
	}
	tags, err := load(r.Context(), participantID)
	if err != nil {
		log.Println("GetInterests error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch interests")
		return
	}
	respondTags(w, tags)
}

// AddInterest appends a tag to the set if absent.
func AddInterest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID, ok := requireSelf(w, r, ps)
	if !ok {
		return
	}

	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	tag := normalizeTag(body.Tag)
	if tag == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tag must not be empty")
		return
	}

	tags, err := load(r.Context(), participantID)
	if err != nil {
		log.Println("AddInterest load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	for _, t := range tags {
		if t == tag {
			respondTags(w, tags)
			return
		}
	}
	tags = append(tags, tag)

	if err := save(r.Context(), participantID, tags); err != nil {
		log.Println("AddInterest save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	respondTags(w, tags)
}

// RemoveInterest drops a tag from the set.
func RemoveInterest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID, ok := requireSelf(w, r, ps)
	if !ok {
		return
	}

	tag := normalizeTag(r.URL.Query().Get("tag"))
	if tag == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tag must not be empty")
		return
	}

	tags, err := load(r.Context(), participantID)
	if err != nil {
		log.Println("RemoveInterest load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}

	if err := save(r.Context(), participantID, kept); err != nil {
		log.Println("RemoveInterest save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	respondTags(w, kept)
}

// ReplaceInterests is the bulk-replace used by the preferences page.
func ReplaceInterests(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID, ok := requireSelf(w, r, ps)
	if !ok {
		return
	}

	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	tags := utils.SplitTags(strings.Join(body.Tags, ","))

	if err := save(r.Context(), participantID, tags); err != nil {
		log.Println("ReplaceInterests save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	respondTags(w, tags)
}

func requireSelf(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (string, bool) {
	participantID := ps.ByName("id")
	if participantID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return participantID, true
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func load(ctx context.Context, participantID string) ([]string, error) {
	var set models.InterestSet
	err := db.InterestsCollection.FindOne(ctx, bson.M{"participantid": participantID}).Decode(&set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []string{}, nil
		}
		return nil, err
	}
	if set.Tags == nil {
		return []string{}, nil
	}
	return set.Tags, nil
}

func save(ctx context.Context, participantID string, tags []string) error {
	_, err := db.InterestsCollection.UpdateOne(ctx,
		bson.M{"participantid": participantID},
		bson.M{"$set": bson.M{"tags": tags, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func respondTags(w http.ResponseWriter, tags []string) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tags": tags})
}
