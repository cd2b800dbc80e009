package ws

import (
	"context"
	"encoding/json"

	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/service"
)

// TrackingEntry is what the customer-facing board needs about an order.
type TrackingEntry struct {
	ID     string `json:"id"`
	Number string `json:"order_number"`
	Status string `json:"status"`
}

// Notifier publishes domain events to the hub. The kitchen room gets full
// orders; the tracking room only gets number and status.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// NotifyOrder implements service.Notifier.
func (n *Notifier) NotifyOrder(ctx context.Context, eventType string, order service.Order) {
	n.publish(enum.RoomKitchen, eventType, order)
	n.publish(enum.RoomTracking, eventType, TrackingEntry{
		ID:     order.ID.String(),
		Number: order.Number,
		Status: order.Status,
	})
}

// NotifyCatalog tells the kiosk displays a product changed.
func (n *Notifier) NotifyCatalog(ctx context.Context, product catalog.Product) {
	n.publish(enum.RoomTracking, enum.EventCatalogUpdated, product)
}

func (n *Notifier) publish(room, eventType string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logx.Error().Err(err).Str("type", eventType).Msg("marshal ws payload")
		return
	}
	n.hub.BroadcastToRoom(room, Event{Type: eventType, Payload: payload})
}
