package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// NotificationsExchange — exchange уведомлений об истекающих фактурах.
	NotificationsExchange = "notifications"
	// ExpiringQueue — очередь уведомлений для отправителя писем.
	ExpiringQueue = "expiring_invoices"
	// ExpiringRoutingKey — ключ маршрутизации уведомлений.
	ExpiringRoutingKey = "expiring"
)

// SetupChannel открывает канал и объявляет exchange, очередь и привязку
// для уведомлений об истекающих фактурах. Объявления идемпотентны.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		ExpiringQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, ExpiringQueue, err)
	}

	err = ch.QueueBind(
		ExpiringQueue,
		ExpiringRoutingKey,
		NotificationsExchange,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, ExpiringQueue, err)
	}

	return ch, nil
}
