package middleware

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MiddlewareMessage is one delivery handed to an OnMessageCallback.
type MiddlewareMessage struct {
	Body    []byte
	Headers amqp.Table
}

type MessageMiddlewareError struct {
	Code int
	Msg  string
}

func (e *MessageMiddlewareError) Error() string {
	return fmt.Sprintf("middleware error (%d): %s", e.Code, e.Msg)
}

const (
	MessageMiddlewareMessageError int = iota + 1
	MessageMiddlewareDisconnectedError
	MessageMiddlewareCloseError
	MessageMiddlewareDeleteError
	MessageMiddlewareProducerCannotConsumeError
	MessageMiddlewareConsumerCannotSendError
)

// OnMessageCallback handles one delivery. Sending nil on done acks the
// message; sending an error nacks and requeues it.
type OnMessageCallback func(msg MiddlewareMessage, done chan *MessageMiddlewareError)

// MessageMiddleware is either side of a queue/exchange connection.
type MessageMiddleware interface {
	StartConsuming(onMessageCallback OnMessageCallback) *MessageMiddlewareError
	StopConsuming() *MessageMiddlewareError
	Send(message []byte) *MessageMiddlewareError
	Close() *MessageMiddlewareError
	Delete() *MessageMiddlewareError
}
