package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"gatherly/pkg/config"
	"gatherly/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	FanoutQueueName = "notification_fanout"
	FanoutExchange  = "notifications"
	fanoutKey       = "fanout"
)

// FanoutTask asks the notification consumer to deliver one notification to
// every recipient of an event or group.
type FanoutTask struct {
	Kind    string `json:"kind"`
	EventID string `json:"event_id,omitempty"`
	GroupID string `json:"group_id,omitempty"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	// ActorID is excluded from the recipient set (no self-notifications).
	ActorID string `json:"actor_id,omitempty"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		FanoutExchange, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		FanoutQueueName, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(FanoutQueueName, fanoutKey, FanoutExchange, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishFanoutTask enqueues a fan-out task. Messages are persistent so a
// broker restart does not drop pending notifications.
func (c *Client) PublishFanoutTask(task FanoutTask) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		FanoutExchange, // exchange
		fanoutKey,      // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("Failed to publish fanout task kind=%s: %v", task.Kind, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeFanoutTasks consumes fan-out tasks from the queue. Handler errors
// requeue the message; malformed payloads are dropped.
func (c *Client) ConsumeFanoutTasks(handler func(task FanoutTask) error) error {
	msgs, err := c.channel.Consume(
		FanoutQueueName, // queue
		"",              // consumer
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Started consuming fanout tasks from queue %s", FanoutQueueName)

	go func() {
		for msg := range msgs {
			var task FanoutTask
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("Failed to unmarshal fanout task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("Handler failed to process fanout task kind=%s: %v", task.Kind, err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// GetQueueLength returns the number of pending fan-out tasks.
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(FanoutQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
