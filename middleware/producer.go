package middleware

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	name    string
	key     string
	channel *amqp.Channel
}

// NewProducer declares a direct exchange and publishes to it with the given
// routing key (empty when no key is passed).
func NewProducer(name string, connectionAddr string, keys ...string) (*Producer, error) {
	ch, merr := channelFor(connectionAddr)
	if merr != nil {
		return nil, merr
	}

	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}

	err := ch.ExchangeDeclare(
		name,
		"direct", // type
		false,    // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Producer{name: name, key: key, channel: ch}, nil
}

func (p *Producer) StartConsuming(onMessageCallback OnMessageCallback) *MessageMiddlewareError {
	return &MessageMiddlewareError{Code: MessageMiddlewareProducerCannotConsumeError, Msg: "Producer cannot consume messages"}
}

func (p *Producer) StopConsuming() *MessageMiddlewareError {
	return &MessageMiddlewareError{Code: MessageMiddlewareProducerCannotConsumeError, Msg: "Producer cannot consume messages"}
}

func (p *Producer) Send(message []byte) *MessageMiddlewareError {
	err := p.channel.Publish(
		p.name,
		p.key,
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

func (p *Producer) Close() *MessageMiddlewareError {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return &MessageMiddlewareError{Code: MessageMiddlewareCloseError, Msg: "Failed to close channel: " + err.Error()}
		}
	}
	return nil
}

func (p *Producer) Delete() *MessageMiddlewareError {
	if p.channel != nil {
		if err := p.channel.ExchangeDelete(p.name, false, false); err != nil {
			return &MessageMiddlewareError{Code: MessageMiddlewareDeleteError, Msg: "Failed to delete exchange: " + err.Error()}
		}
	}
	return nil
}
