// setup.go
package rabbit

import (
	"log"

	"storefront-service/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

const (
	logisticsExchange = "logistics_events"
	logisticsQueue    = "storefront_logistics_updates"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.OrderService) {
	consumer := NewLogisticsConsumer(svc)

	if err := ch.ExchangeDeclare(logisticsExchange, "fanout", true, false, false, false, nil); err != nil {
		log.Println("error declaring exchange:", err)
		return
	}

	q, err := ch.QueueDeclare(logisticsQueue, true, false, false, false, nil)
	if err != nil {
		log.Println("error declaring queue:", err)
		return
	}

	if err := ch.QueueBind(q.Name, "", logisticsExchange, false, nil); err != nil {
		log.Println("error binding exchange:", err)
		return
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		log.Println("error consuming queue:", err)
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Println("subscribed to exchange", logisticsExchange)
}
