package middleware

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	name       string
	sourceName string
	channel    *amqp.Channel
	deliveries <-chan amqp.Delivery

	quit    chan struct{}
	deleted chan struct{}
	done    chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewConsumer declares a queue bound to the sourceName direct exchange with
// the given routing key and consumes from it.
func NewConsumer(consumerName string, sourceName string, connectionAddr string, keys ...string) (*Consumer, error) {
	ch, merr := channelFor(connectionAddr)
	if merr != nil {
		return nil, merr
	}

	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}

	q, err := ch.QueueDeclare(
		key+"###"+consumerName, // name
		false,                  // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	err = ch.ExchangeDeclare(
		sourceName,
		"direct", // type
		false,    // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	err = ch.QueueBind(
		q.Name,
		key,
		sourceName,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Consumer{
		name:       q.Name,
		sourceName: sourceName,
		channel:    ch,
		quit:       make(chan struct{}),
		deleted:    make(chan struct{}),
		done:       make(chan struct{}),
	}, nil
}

// StartConsuming blocks processing deliveries until StopConsuming is called
// or the deliveries channel closes. The callback decides per message whether
// to ack (nil) or nack-and-requeue (error).
func (c *Consumer) StartConsuming(onMessageCallback OnMessageCallback) *MessageMiddlewareError {
	var startErr error

	c.startOnce.Do(func() {
		deliveries, err := c.channel.Consume(
			c.name, // queue
			"",     // consumer
			false,  // autoAck
			false,  // exclusive
			false,  // noLocal
			false,  // noWait
			nil,    // args
		)
		if err != nil {
			startErr = err
			return
		}
		c.deliveries = deliveries
	})

	if startErr != nil {
		return &MessageMiddlewareError{Code: MessageMiddlewareMessageError, Msg: "Failed consuming: " + startErr.Error()}
	}

	defer close(c.done)
	for {
		select {
		case <-c.quit:
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				return nil
			}

			ret := make(chan *MessageMiddlewareError, 1)
			onMessageCallback(MiddlewareMessage{Body: d.Body, Headers: d.Headers}, ret)

			select {
			case <-c.deleted:
				return nil
			case err := <-ret:
				if err != nil {
					_ = d.Nack(false, true) // requeue
				} else {
					_ = d.Ack(false)
				}
			}
		}
	}
}

func (c *Consumer) StopConsuming() *MessageMiddlewareError {
	c.closeOnce.Do(func() {
		if c.quit != nil {
			close(c.quit)
		}
		// If StartConsuming never ran, nothing closes c.done and waiting
		// would block forever.
		if c.deliveries != nil {
			<-c.done
		}
	})
	return nil
}

func (c *Consumer) Send(message []byte) *MessageMiddlewareError {
	err := c.channel.Publish(
		"",
		c.name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
	if err != nil {
		return &MessageMiddlewareError{Code: MessageMiddlewareDisconnectedError, Msg: "Failed to send message"}
	}
	return nil
}

func (c *Consumer) Close() *MessageMiddlewareError {
	c.StopConsuming()
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return &MessageMiddlewareError{Code: MessageMiddlewareCloseError, Msg: "Failed to close channel: " + err.Error()}
		}
	}
	return nil
}

func (c *Consumer) Delete() *MessageMiddlewareError {
	var firstErr *MessageMiddlewareError

	if c.channel != nil {
		close(c.deleted)
		_, err := c.channel.QueueDelete(c.name, false, false, false)
		if err != nil {
			firstErr = &MessageMiddlewareError{Code: MessageMiddlewareDeleteError, Msg: "Failed to delete queue: " + err.Error()}
		}
		if err := c.channel.Close(); err != nil {
			if firstErr == nil {
				firstErr = &MessageMiddlewareError{Code: MessageMiddlewareCloseError, Msg: "Failed to close channel: " + err.Error()}
			} else {
				firstErr.Msg = firstErr.Msg + "; failed to close channel: " + err.Error()
			}
		}
	}
	return firstErr
}
