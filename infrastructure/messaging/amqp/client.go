// Package amqp publica o resumo de vendas no RabbitMQ
package amqp

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const publishTimeout = 5 * time.Second

// channel é o subconjunto de *amqp091.Channel usado pelo cliente
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Client struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
}

func NewClient(cfg config.AMQP) (*Client, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar no broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "erro ao abrir canal")
	}

	client := &Client{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return errors.Wrap(err, "erro ao declarar exchange")
	}

	return nil
}

// PublishDigest publica o resumo como mensagem persistente em JSON
func (c *Client) PublishDigest(ctx context.Context, digest *domain.SalesDigest) error {
	body, err := NewDigestMessage(digest).ToJSON()
	if err != nil {
		return errors.Wrap(err, "erro ao serializar resumo")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchange,   // exchange
		c.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    digest.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrap(err, "erro ao publicar resumo")
	}

	logrus.WithFields(logrus.Fields{
		"digest_id":   digest.ID,
		"period":      digest.Period,
		"exchange":    c.exchange,
		"routing_key": c.routingKey,
	}).Info("Resumo de vendas publicado")

	return nil
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
