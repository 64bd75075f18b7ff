package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/mq"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// wirePayload is what goes over the websocket to conversation watchers.
type wirePayload struct {
	Type           string `json:"type"` // "message"
	ID             string `json:"id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Sender         string `json:"sender,omitempty"`
	Message        string `json:"message,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
}

const maxMessageLen = 1000

// adminsRoom receives every customer message regardless of conversation,
// so the admin console can show live activity without a socket per thread.
const adminsRoom = "admins"

type startRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// POST /api/chat/start — the widget opens (or resumes) a conversation
// keyed by customer email.
func StartConversation(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input startRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if input.Name == "" || !utils.ValidEmail(email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Name and a valid email are required")
			return
		}
		if len(input.Message) > maxMessageLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Message is too long")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		now := time.Now().UTC().Format(time.RFC3339)

		var conv models.Conversation
		err := db.ConversationsCollection.FindOne(ctx, bson.M{"customer_email": email}).Decode(&conv)
		if err == mongo.ErrNoDocuments {
			conv = models.Conversation{
				ID:            uuid.NewString(),
				CustomerName:  input.Name,
				CustomerEmail: email,
				CustomerPhone: input.Phone,
				Messages:      []models.ChatMessage{},
				CreatedAt:     now,
				LastMessageAt: now,
			}
			if _, err := db.ConversationsCollection.InsertOne(ctx, conv); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start conversation")
				return
			}
		} else if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if input.Message != "" {
			appendMessage(ctx, hub, &conv, "customer", input.Message)
		}

		utils.RespondWithJSON(w, http.StatusOK, conv)
	}
}

// appendMessage persists a message, bumps the unread counter for
// customer messages, and pushes it to live watchers.
func appendMessage(ctx context.Context, hub *Hub, conv *models.Conversation, sender, text string) models.ChatMessage {
	now := time.Now().UTC().Format(time.RFC3339)
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Message:   text,
		Read:      sender == "admin",
		Timestamp: now,
	}

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"last_message_at": now},
	}
	if sender == "customer" {
		update["$inc"] = bson.M{"unread_count": 1}
	}
	db.ConversationsCollection.UpdateOne(ctx, bson.M{"id": conv.ID}, update)

	conv.Messages = append(conv.Messages, msg)
	conv.LastMessageAt = now

	if data, err := json.Marshal(wirePayload{
		Type:           "message",
		ID:             msg.ID,
		ConversationID: conv.ID,
		Sender:         msg.Sender,
		Message:        msg.Message,
		Timestamp:      msg.Timestamp,
	}); err == nil {
		hub.Publish(conv.ID, data)
		if sender == "customer" {
			hub.Publish(adminsRoom, data)
		}
	}
	return msg
}

type messageRequest struct {
	Message string `json:"message"`
}

// POST /api/chat/conversation/:id/messages — customer side of the widget.
func PostCustomerMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var input messageRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
			return
		}
		if len(input.Message) > maxMessageLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Message is too long")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var conv models.Conversation
		if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&conv); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
			return
		}

		msg := appendMessage(ctx, hub, &conv, "customer", input.Message)

		mq.Emit(ctx, mq.Event{
			Kind:    "chat",
			Subject: "New chat message from " + conv.CustomerName,
			Fields: map[string]string{
				"email":   conv.CustomerEmail,
				"message": input.Message,
			},
		})

		utils.RespondWithJSON(w, http.StatusCreated, msg)
	}
}

// GET /api/chat/conversation/:id/messages — the widget polls when the socket is down.
func GetConversationMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var conv models.Conversation
	if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&conv); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, conv.Messages)
}

// GET /api/admin/chat/conversations — newest activity first.
func GetAllConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ConversationsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"last_message_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	convs := []models.Conversation{}
	if err := cur.All(ctx, &convs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode conversations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, convs)
}

// POST /api/admin/chat/conversations/:id/reply
func PostAdminReply(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var input messageRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var conv models.Conversation
		if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&conv); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
			return
		}

		msg := appendMessage(ctx, hub, &conv, "admin", input.Message)
		utils.RespondWithJSON(w, http.StatusCreated, msg)
	}
}

// PUT /api/admin/chat/conversations/:id/read — clears the unread badge.
func MarkConversationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ConversationsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"unread_count":     0,
			"messages.$[].read": true,
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update conversation")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Conversation marked read"})
}

// DELETE /api/admin/chat/conversations/:id
func DeleteConversation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ConversationsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}
