package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler streams live messages for one conversation. Both the
// customer widget and the admin panel connect here; inbound frames are
// treated as customer messages unless ?role=admin is set.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		convID := ps.ByName("id")
		sender := "customer"
		if r.URL.Query().Get("role") == "admin" {
			sender = "admin"
		}

		// The admin console can join the shared activity room instead of
		// a single conversation; it is watch-only.
		var conv models.Conversation
		if convID == adminsRoom {
			if sender != "admin" {
				http.Error(w, "Conversation not found", http.StatusNotFound)
				return
			}
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": convID}).Decode(&conv)
			cancel()
			if err != nil {
				http.Error(w, "Conversation not found", http.StatusNotFound)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &wsClient{
			Send: make(chan []byte, 256),
			Room: convID,
		}

		// Replay history so a fresh socket starts in sync. trySend
		// drops the rest if the hub shuts down mid-replay.
		go func() {
			for _, m := range conv.Messages {
				out := wirePayload{
					Type:           "message",
					ID:             m.ID,
					ConversationID: convID,
					Sender:         m.Sender,
					Message:        m.Message,
					Timestamp:      m.Timestamp,
				}
				data, err := json.Marshal(out)
				if err != nil {
					continue
				}
				if !client.trySend(data) {
					return
				}
			}
		}()

		hub.register <- client
		go writePump(client, conn)
		go readPump(client, conn, hub, sender)
	}
}

func writePump(c *wsClient, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *wsClient, conn *websocket.Conn, hub *Hub, sender string) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var in wirePayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Message == "" || len(in.Message) > maxMessageLen || c.Room == adminsRoom {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		var conv models.Conversation
		if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": c.Room}).Decode(&conv); err == nil {
			appendMessage(ctx, hub, &conv, sender, in.Message)
		}
		cancel()
	}
}
