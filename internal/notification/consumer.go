package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/utils"
)

// StartConsumer runs the notification bus consumer until ctx is cancelled.
// Call it in its own goroutine; it returns immediately when kafka is not
// configured (producers dispatch inline in that case).
func StartConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	reader := utils.NewKafkaReader(cfg, "notification-workers")
	if reader == nil {
		log.Println("⚠️ Kafka not configured, notification consumer not started")
		return
	}
	defer reader.Close()

	log.Println("✅ Notification consumer started")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("🔄 Notification consumer stopping")
				return
			}
			log.Printf("⚠️ Failed to read notification message: %v", err)
			continue
		}

		var ev BusEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Printf("⚠️ Discarding malformed notification message: %v", err)
			continue
		}
		svc.Dispatch(ctx, ev)
	}
}
