package services

import (
	"time"

	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// guardPublicFields never includes password or refreshToken.
var guardPublicFields = bson.D{
	{Key: "username", Value: 1},
	{Key: "fullName", Value: 1},
	{Key: "email", Value: 1},
	{Key: "phone", Value: 1},
	{Key: "residence", Value: 1},
	{Key: "isApproved", Value: 1},
	{Key: "workPercent", Value: 1},
}

/*
* $match the guards, $lookup their single location and $project the
* public fields with the location flattened out of its array. With
* assignedOnly, guards without a location are dropped
 */
func guardsWithLocationPipeline(match bson.M, assignedOnly bool) mongo.Pipeline {
	project := append(bson.D{}, guardPublicFields...)
	project = append(project, bson.E{Key: "location", Value: bson.M{"$first": "$location"}})
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.LocationCollection,
			"localField":   "_id",
			"foreignField": "guard",
			"as":           "location",
		}}},
		{{Key: "$project", Value: project}},
	}
	if assignedOnly {
		p = append(p, bson.D{{Key: "$match", Value: bson.M{"location": bson.M{"$ne": nil}}}})
	}
	return p
}

func locationsWithGuardPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "updatedAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.GuardCollection,
			"localField":   "guard",
			"foreignField": "_id",
			"as":           "guardInfo",
			"pipeline":     mongo.Pipeline{{{Key: "$project", Value: guardPublicFields}}},
		}}},
		{{Key: "$set", Value: bson.M{"guardInfo": bson.M{"$first": "$guardInfo"}}}},
	}
}

/*
* Complains and appreciations share one shape once joined with the guard
* and the user who wrote them. textField is the collection's text field
 */
func feedbackPipeline(textField string, match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.GuardCollection,
			"localField":   "guard",
			"foreignField": "_id",
			"as":           "guardDoc",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.UserCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "userDoc",
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "text", Value: "$" + textField},
			{Key: "guardId", Value: "$guard"},
			{Key: "guardUsername", Value: bson.M{"$first": "$guardDoc.username"}},
			{Key: "userId", Value: "$user"},
			{Key: "username", Value: bson.M{"$first": "$userDoc.username"}},
			{Key: "createdAt", Value: 1},
		}}},
	}
}

/*
* Latest ping per guard: sort newest first, keep the first document of
* every guard group, then join the guard
 */
func latestPingsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "recordedAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":  "$guard",
			"ping": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$ping"}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.GuardCollection,
			"localField":   "guard",
			"foreignField": "_id",
			"as":           "guardInfo",
			"pipeline":     mongo.Pipeline{{{Key: "$project", Value: guardPublicFields}}},
		}}},
		{{Key: "$set", Value: bson.M{"guardInfo": bson.M{"$first": "$guardInfo"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "recordedAt", Value: -1}}}},
	}
}

// dailyWorkPipeline counts pings and in-zone pings per guard in [from, to).
func dailyWorkPipeline(from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"recordedAt": bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$guard",
			"total": bson.M{"$sum": 1},
			"within": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$withinZone", 1, 0},
			}},
		}}},
	}
}
