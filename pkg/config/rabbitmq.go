package config

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// InitRabbitMQ connects to RabbitMQ when RABBITMQ_URL is set. Returns a nil
// channel when the broker is not configured or unreachable; notification
// events are then only written to the database.
func InitRabbitMQ(url string) (*amqp.Connection, *amqp.Channel) {
	if url == "" {
		log.Println("RABBITMQ_URL not set, notification events disabled.")
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("RabbitMQ unreachable (%v), notification events disabled.", err)
		return nil, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("RabbitMQ channel open failed (%v), notification events disabled.", err)
		_ = conn.Close()
		return nil, nil
	}

	log.Println("Successfully connected to RabbitMQ!")
	return conn, ch
}
