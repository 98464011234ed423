package rabbit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront-service/internal/model"

	"github.com/rabbitmq/amqp091-go"
)

const orderPlacedExchange = "order_placed"

// Publisher emits order lifecycle events on a fanout exchange. A nil channel
// turns it into a no-op so checkout works without a broker.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) *Publisher {
	if ch != nil {
		if err := ch.ExchangeDeclare(orderPlacedExchange, "fanout", true, false, false, false, nil); err != nil {
			log.Println("error declaring exchange:", err)
		}
	}
	return &Publisher{ch: ch}
}

type orderPlacedEvent struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	ItemCount   int     `json:"itemCount"`
	PlacedAt    string  `json:"placedAt"`
}

// PublishOrderPlaced is best-effort: a broker failure is logged, never
// surfaced to the customer.
func (p *Publisher) PublishOrderPlaced(o *model.Order) {
	if p == nil || p.ch == nil {
		return
	}

	event := orderPlacedEvent{
		OrderID:     o.ID.Hex(),
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Amount:      o.Amount,
		ItemCount:   len(o.Items),
		PlacedAt:    o.CreatedAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Println("error encoding order_placed event:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, orderPlacedExchange, "", false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Println("error publishing order_placed event:", err)
	}
}
