package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"sort"
	"strings"

	"atelier/rdx"
)

// StartNotifyWorker subscribes to the notification channel and emails
// each event to the operator address. Runs until the process exits.
func StartNotifyWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, notifyChannel)
	ch := sub.Channel()

	log.Println("[NotifyWorker] Listening for notification events...")

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[NotifyWorker] Failed to parse event: %v", err)
			continue
		}
		if err := sendNotificationEmail(event); err != nil {
			// Notification failure is never surfaced to callers.
			log.Printf("[NotifyWorker] email failed for %s: %v", event.Kind, err)
		}
	}
}

func sendNotificationEmail(event Event) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	to := os.Getenv("NOTIFY_EMAIL")
	if to == "" {
		to = from
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Subject: %s\n\n", event.Subject)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&body, "%s: %s\n", k, event.Fields[k])
	}

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(body.String()))
}
