package booking

import (
	"context"
	"log"

	"atelier/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Capacity claims close the check-then-insert race: a booking is only
// inserted after a single guarded $inc on the per-(date, slot) claim
// document succeeds. Two concurrent requests for the last seat race on
// the same document, and the storage layer lets exactly one through.
// Requires the unique (date, time_slot) index from EnsureIndexes.

// ClaimSeat takes one seat for (date, slotKey). Returns false when the
// slot is already at capacity.
func ClaimSeat(ctx context.Context, date, slotKey string, max int) (bool, error) {
	filter := bson.M{
		"date":      date,
		"time_slot": slotKey,
		"count":     bson.M{"$lt": max},
	}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"max": max},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true)

	err := db.SlotClaimsCollection.FindOneAndUpdate(ctx, filter, update, opts).Err()
	if err == nil {
		return true, nil
	}
	// A full slot fails the filter; the upsert then collides with the
	// existing claim document's unique index.
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err == mongo.ErrNoDocuments {
		// Upserted a fresh claim document; the seat is ours.
		return true, nil
	}
	return false, err
}

// ReleaseSeat frees one previously claimed seat, flooring at zero.
func ReleaseSeat(ctx context.Context, date, slotKey string) {
	_, err := db.SlotClaimsCollection.UpdateOne(ctx, bson.M{
		"date":      date,
		"time_slot": slotKey,
		"count":     bson.M{"$gt": 0},
	}, bson.M{"$inc": bson.M{"count": -1}})
	if err != nil {
		log.Printf("release seat %s %s: %v", date, slotKey, err)
	}
}

// EnsureIndexes creates the unique claim index; called once at startup.
func EnsureIndexes(ctx context.Context) error {
	_, err := db.SlotClaimsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
