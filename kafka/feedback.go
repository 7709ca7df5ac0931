package kafka

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"namecheck/engine"
	"namecheck/types"
)

// FeedbackEvent is the wire format for feedback submitted through Kafka.
// OriginalPrediction and UserCorrection are pointers so that a missing field
// can be told apart from an explicit false.
type FeedbackEvent struct {
	Name1              string   `json:"name1"`
	Name2              string   `json:"name2"`
	OriginalPrediction *bool    `json:"original_prediction"`
	UserCorrection     *bool    `json:"user_correction"`
	Confidence         *float64 `json:"confidence_score"`
	Note               string   `json:"feedback_text"`
}

// FeedbackConsumerConfig holds configuration for the feedback consumer.
type FeedbackConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Service *engine.Service
}

// NewFeedbackConsumer creates a Kafka consumer that records feedback events
// and kicks off a retraining cycle once enough unprocessed feedback piles up.
func NewFeedbackConsumer(config FeedbackConsumerConfig) (*Consumer, error) {
	handler := &TypedMessageHandler[FeedbackEvent]{
		Validate: func(msg *FeedbackEvent) bool {
			if msg.Name1 == "" || msg.Name2 == "" {
				log.Printf("Skipping feedback event with missing names")
				return false
			}
			if msg.OriginalPrediction == nil || msg.UserCorrection == nil {
				log.Printf("Skipping feedback event with missing prediction fields")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *FeedbackEvent) error {
			confidence := 0.0
			if msg.Confidence != nil {
				confidence = *msg.Confidence
			}

			id, err := config.Service.RecordFeedback(types.FeedbackRecord{
				Name1:              msg.Name1,
				Name2:              msg.Name2,
				OriginalPrediction: *msg.OriginalPrediction,
				UserCorrection:     *msg.UserCorrection,
				Confidence:         confidence,
				Note:               msg.Note,
			})
			if err != nil {
				log.Printf("Failed to record feedback from Kafka: %v", err)
				return err
			}
			log.Printf("Recorded feedback %s from Kafka", id)

			due, err := config.Service.ShouldRetrain()
			if err != nil {
				log.Printf("Failed to check retrain threshold: %v", err)
				return nil
			}
			if due {
				go func() {
					if _, err := config.Service.Retrain(); err != nil {
						log.Printf("Retraining after Kafka feedback failed: %v", err)
					}
				}()
			}
			return nil
		},
		AlwaysMark: true, // Mark validation failures, but not processing failures
	}

	return NewConsumer(ConsumerConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
		GroupID: config.GroupID,
		Handler: handler,
	})
}

// StartFeedbackConsumerWithGracefulShutdown starts the feedback consumer and
// blocks until an interrupt signal arrives.
func StartFeedbackConsumerWithGracefulShutdown(config FeedbackConsumerConfig) error {
	consumer, err := NewFeedbackConsumer(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()

	// Give some time for in-flight processing to complete
	time.Sleep(2 * time.Second)

	return consumer.Close()
}

// GetKafkaBrokers parses the Kafka broker list from the environment.
func GetKafkaBrokers() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// GetKafkaTopic returns the feedback topic name from the environment.
func GetKafkaTopic() string {
	topic := os.Getenv("KAFKA_TOPIC_FEEDBACK")
	if topic == "" {
		topic = "name-comparison-feedback"
	}
	return topic
}

// GetKafkaGroupID returns the Kafka consumer group ID.
func GetKafkaGroupID() string {
	groupID := os.Getenv("KAFKA_CONSUMER_GROUP_ID")
	if groupID == "" {
		groupID = "namecheck-feedback-consumer-group"
	}
	return groupID
}
