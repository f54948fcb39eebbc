package analytics

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"gatherly/aggregate"
	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MonthlyParticipants returns `{month, present, absent}` rows for the
// organization plus the coerced totals and attendance rate. Rows come out of
// an aggregation over check-in records, oldest month first.
func MonthlyParticipants(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	if orgID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	records, err := monthlyStats(ctx, orgID)
	if err != nil {
		log.Println("MonthlyParticipants error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch attendance")
		return
	}

	summary := aggregate.MonthlyAttendance(records)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"records": records,
		"summary": summary,
	})
}

func monthlyStats(ctx context.Context, orgID string) ([]models.MonthlyStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"orgid": orgID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$month",
			"present": bson.M{"$sum": bson.M{"$cond": []any{"$present", 1, 0}}},
			"absent":  bson.M{"$sum": bson.M{"$cond": []any{"$present", 0, 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := db.AttendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Month   string         `bson:"_id"`
		Present models.FlexInt `bson:"present"`
		Absent  models.FlexInt `bson:"absent"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	records := make([]models.MonthlyStat, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.MonthlyStat{
			Month:   row.Month,
			Present: row.Present,
			Absent:  row.Absent,
		})
	}
	return records, nil
}

// TagDistributionHandler serves the tag chart for an organization's events.
func TagDistributionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgEvents, ok := fetchOrgEvents(w, r, ps)
	if !ok {
		return
	}
	topK, _ := parseTopK(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tags": aggregate.TagDistribution(orgEvents, topK)})
}

// TypeDistributionHandler serves the event-type chart.
func TypeDistributionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgEvents, ok := fetchOrgEvents(w, r, ps)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"types": aggregate.TypeDistribution(orgEvents)})
}

// LocationHandler serves the per-city participation chart.
func LocationHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgEvents, ok := fetchOrgEvents(w, r, ps)
	if !ok {
		return
	}
	topK, _ := parseTopK(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"locations": aggregate.LocationAggregation(orgEvents, topK)})
}

func fetchOrgEvents(w http.ResponseWriter, r *http.Request, ps httprouter.Params) ([]models.Event, bool) {
	orgID := ps.ByName("orgid")
	if orgID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := utils.FindAndDecode[models.Event](ctx, db.EventsCollection, bson.M{"organizer.orgid": orgID})
	if err != nil {
		log.Println("fetchOrgEvents error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return nil, false
	}
	return list, true
}

func parseTopK(r *http.Request) (int, bool) {
	k, err := strconv.Atoi(r.URL.Query().Get("top"))
	if err != nil || k < 1 {
		return 0, false
	}
	return k, true
}
