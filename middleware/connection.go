package middleware

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	connMu sync.Mutex
	conn   *amqp.Connection
)

// channelFor returns a channel on the process-wide broker connection,
// dialing on first use and redialing if the connection dropped. Producers
// and consumers each own their channel; the connection is shared.
func channelFor(url string) (*amqp.Channel, *MessageMiddlewareError) {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil || conn.IsClosed() {
		c, err := amqp.Dial(url)
		if err != nil {
			return nil, &MessageMiddlewareError{
				Code: MessageMiddlewareDisconnectedError,
				Msg:  "Could not connect to broker: " + err.Error(),
			}
		}
		conn = c
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, &MessageMiddlewareError{
			Code: MessageMiddlewareDisconnectedError,
			Msg:  "Could not open channel: " + err.Error(),
		}
	}
	return ch, nil
}
