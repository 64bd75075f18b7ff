package routes

import (
	"atelier/chat"
	"atelier/middleware"
	"atelier/models"
	"atelier/ratelim"

	"github.com/julienschmidt/httprouter"
)

// AddChatRoutes needs the hub, so main wires it separately.
func AddChatRoutes(router *httprouter.Router, hub *chat.Hub) {
	// Public widget
	router.POST("/api/chat/start", ratelim.RateLimit(chat.StartConversation(hub)))
	router.GET("/api/chat/conversation/:id/messages", ratelim.RateLimit(chat.GetConversationMessages))
	router.POST("/api/chat/conversation/:id/messages", ratelim.RateLimit(chat.PostCustomerMessage(hub)))
	router.GET("/ws/chat/:id", chat.WebSocketHandler(hub))

	// Admin panel
	router.GET("/api/admin/chat/conversations", middleware.RequirePermission(models.PermManageChat, chat.GetAllConversations))
	router.POST("/api/admin/chat/conversations/:id/reply", middleware.RequirePermission(models.PermManageChat, chat.PostAdminReply(hub)))
	router.PUT("/api/admin/chat/conversations/:id/read", middleware.RequirePermission(models.PermManageChat, chat.MarkConversationRead))
	router.DELETE("/api/admin/chat/conversations/:id", middleware.RequirePermission(models.PermManageChat, chat.DeleteConversation))
}
