package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"atelier/db"
	"atelier/globals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FlushVisitCounters periodically moves page-view counters from Redis
// into the analytics collection. Keys look like visit:count:<page>.
func FlushVisitCounters() {
	ticker := time.NewTicker(60 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "visit:count:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.SplitN(key, ":", 3)
			if len(parts) != 3 {
				log.Println("Invalid visit counter key:", key)
				continue
			}
			page := parts[2]

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}
			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse visit count:", countStr)
				continue
			}
			if count == 0 {
				continue
			}

			_, err = db.AnalyticsCollection.UpdateOne(
				globals.Ctx,
				bson.M{"page": page},
				bson.M{
					"$inc": bson.M{"views": count},
					"$set": bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)},
				},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				log.Println("MongoDB update error for page", page, ":", err)
				continue
			}

			// Reset only after a successful flush.
			if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
				log.Println("Failed to delete Redis key:", key)
			}
		}
	}
}
