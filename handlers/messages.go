// handlers/messages.go - Student/staff messaging with live notifications
package handlers

import (
	"log"
	"sync"
	"time"

	"reactcheckin/database"
	"reactcheckin/middleware"
	"reactcheckin/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Body        string `json:"body"`
}

// SendMessage delivers a message and pushes a live notification to the
// recipient if they have a websocket open
// POST /api/messages
func SendMessage(c *fiber.Ctx) error {
	senderID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if !settingsService.GetBool("messages_enabled") {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Messaging is currently disabled"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Message body is required"})
	}
	if req.RecipientID == 0 || req.RecipientID == senderID {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid recipient"})
	}

	db := database.GetDB()

	var recipient models.User
	if err := db.First(&recipient, req.RecipientID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Recipient not found"})
	}

	message := models.Message{
		PublicID:    uuid.New().String(),
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(&message).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to send message"})
	}

	notifyHub.push(req.RecipientID, fiber.Map{
		"type":       "message",
		"message_id": message.PublicID,
		"sender_id":  senderID,
		"created_at": message.CreatedAt,
	})

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// GetMessages returns the caller's inbox and sent messages
// GET /api/messages?box=inbox|sent
func GetMessages(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	box := c.Query("box", "inbox")

	db := database.GetDB()
	var messages []models.Message

	query := db.Preload("Sender").Preload("Recipient").Order("created_at DESC").Limit(100)
	switch box {
	case "inbox":
		query = query.Where("recipient_id = ?", userID)
	case "sent":
		query = query.Where("sender_id = ?", userID)
	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "box must be inbox or sent"})
	}

	if err := query.Find(&messages).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch messages"})
	}

	var unread int64
	db.Model(&models.Message{}).Where("recipient_id = ? AND is_read = ?", userID, false).Count(&unread)

	return c.JSON(fiber.Map{
		"success":  true,
		"box":      box,
		"messages": messages,
		"unread":   unread,
	})
}

// MarkMessageRead marks one received message as read
// POST /api/messages/:id/read
func MarkMessageRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	publicID := c.Params("id")

	db := database.GetDB()
	var message models.Message
	if err := db.Where("public_id = ? AND recipient_id = ?", publicID, userID).First(&message).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Message not found"})
	}

	if !message.IsRead {
		if err := db.Model(&message).Update("is_read", true).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update message"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// ================== LIVE NOTIFICATIONS ==================

// Send channel buffer size per connection.
const notifyBufferSize = 256

// notifySubscriber is one registered websocket listener. Only its writer
// goroutine touches the connection; push queues payloads onto the buffered
// channel, so the single-writer contract of the websocket library holds no
// matter how many request goroutines send messages concurrently.
type notifySubscriber struct {
	send chan interface{}
	done chan struct{}
}

// messageHub tracks open subscribers per user so new-message events can be
// pushed without polling.
type messageHub struct {
	mu   sync.RWMutex
	subs map[uint][]*notifySubscriber
}

var notifyHub = &messageHub{subs: make(map[uint][]*notifySubscriber)}

func (h *messageHub) add(userID uint) *notifySubscriber {
	sub := &notifySubscriber{
		send: make(chan interface{}, notifyBufferSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[userID] = append(h.subs[userID], sub)
	return sub
}

// remove unregisters the subscriber and stops its writer goroutine. The send
// channel is never closed; a push racing a disconnect just queues onto an
// abandoned channel.
func (h *messageHub) remove(userID uint, sub *notifySubscriber) {
	h.mu.Lock()
	subs := h.subs[userID]
	for i, s := range subs {
		if s == sub {
			h.subs[userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
	h.mu.Unlock()

	close(sub.done)
}

// push queues a payload for every open connection of the user. Non-blocking:
// a full buffer drops the event rather than stalling the request.
func (h *messageHub) push(userID uint, payload interface{}) {
	h.mu.RLock()
	subs := append([]*notifySubscriber(nil), h.subs[userID]...)
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.send <- payload:
		default:
			log.Printf("⚠️ Notification buffer full for user %d, dropping event", userID)
		}
	}
}

// WebSocketUpgrade gates /ws behind a websocket upgrade check. Runs after
// AuthMiddleware so the connection is tied to a user.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket holds the connection open and delivers new-message
// events until the client disconnects.
var NotificationSocket = websocket.New(func(conn *websocket.Conn) {
	var userID uint
	switch v := conn.Locals("userId").(type) {
	case float64:
		userID = uint(v)
	case uint:
		userID = v
	default:
		conn.Close()
		return
	}

	sub := notifyHub.add(userID)
	defer func() {
		notifyHub.remove(userID, sub)
		conn.Close()
	}()

	// writePump: the one goroutine allowed to write to the connection. On a
	// write error it closes the connection so the read loop below unblocks.
	go func() {
		for {
			select {
			case payload := <-sub.send:
				if err := conn.WriteJSON(payload); err != nil {
					log.Printf("Notification write failed for user %d: %v", userID, err)
					conn.Close()
					return
				}
			case <-sub.done:
				return
			}
		}
	}()

	// Drain client frames; the socket is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})
