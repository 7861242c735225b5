package rabbitmq

// Exchange — общий exchange для событий подписок.
const Exchange = "subscriptions"

// Имена очередей и ключи маршрутизации воркера provisioner.
const (
	QueueProvision = "subscription.provision"
	QueueActivated = "subscription.activated"

	RoutingKeyProvision = "provision"
	RoutingKeyActivated = "activated"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetSubscriptionQueues возвращает очереди событий подписок.
func GetSubscriptionQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueProvision, RoutingKey: RoutingKeyProvision},
		{QueueName: QueueActivated, RoutingKey: RoutingKeyActivated},
	}
}
