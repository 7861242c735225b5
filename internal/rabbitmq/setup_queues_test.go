package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSubscriptionQueues(t *testing.T) {
	queues := GetSubscriptionQueues()

	require.NotEmpty(t, queues, "queues list should not be empty")

	// Проверка очереди provision
	first := queues[0]
	assert.Equal(t, "subscription.provision", first.QueueName)
	assert.Equal(t, "provision", first.RoutingKey)

	// Проверка уникальности QueueName
	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
