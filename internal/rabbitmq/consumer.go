package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// maxInflight ограничивает число одновременно обрабатываемых сообщений.
const maxInflight = 10

// ConsumerMessage подписывается на очередь и передает тело каждого
// сообщения в handler. Ошибка handler возвращает сообщение в очередь.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInflight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go handleDelivery(d, handler, sem)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func handleDelivery(d amqp.Delivery, handler func([]byte) error, sem chan struct{}) {
	defer func() { <-sem }()
	if err := handler(d.Body); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Printf("failed to nack message: %v", nackErr)
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Printf("failed to ack message: %v", ackErr)
	}
}
