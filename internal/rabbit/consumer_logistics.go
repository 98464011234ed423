package rabbit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront-service/internal/model"
	"storefront-service/internal/service"
)

// LogisticsConsumer applies courier feed messages to orders as system-attributed
// status events.
type LogisticsConsumer struct {
	Service *service.OrderService
}

func NewLogisticsConsumer(s *service.OrderService) *LogisticsConsumer {
	return &LogisticsConsumer{Service: s}
}

type LogisticsMessage struct {
	OrderID          string `json:"orderId"`
	Status           string `json:"status"`
	Note             string `json:"note"`
	Courier          string `json:"courier"`
	TrackingNumber   string `json:"trackingNumber"`
	ExpectedDelivery string `json:"expectedDelivery"` // RFC3339, optional
	Warehouse        string `json:"warehouse"`
	Source           string `json:"source"`
}

func (c *LogisticsConsumer) Handle(msg []byte) error {
	var event LogisticsMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		log.Println("error parsing logistics message:", err)
		return err
	}

	logistics := model.Logistics{
		Courier:        event.Courier,
		TrackingNumber: event.TrackingNumber,
		Warehouse:      event.Warehouse,
	}
	if event.ExpectedDelivery != "" {
		if eta, err := time.Parse(time.RFC3339, event.ExpectedDelivery); err == nil {
			logistics.ExpectedDelivery = &eta
		}
	}

	actor := service.Actor{Type: "system", Name: event.Source}
	if actor.Name == "" {
		actor.Name = "logistics-feed"
	}

	var err error
	if event.Status != "" {
		err = c.Service.UpdateStatus(context.Background(), event.OrderID, event.Status, event.Note, logistics, actor)
	} else if event.Note != "" {
		err = c.Service.AddNote(context.Background(), event.OrderID, event.Note, actor)
	}
	if err != nil {
		log.Println("error applying logistics update:", err)
		return err
	}

	log.Println("logistics update applied for order:", event.OrderID)
	return nil
}
