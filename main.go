package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"namecheck/api"
	"namecheck/cache"
	"namecheck/common"
	"namecheck/engine"
	"namecheck/kafka"
	"namecheck/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := LoadConfig()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DBPath, err)
	}
	defer st.Close()

	blobs, err := initializeBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize model blob store: %v", err)
	}

	var predictionCache engine.PredictionCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewFromEnv()
		if err != nil {
			log.Printf("Redis cache unavailable, continuing without: %v", err)
		} else {
			defer redisCache.Close()
			predictionCache = redisCache
			log.Printf("Prediction cache enabled on %s", cfg.RedisAddr)
		}
	}

	svc := engine.New(st, blobs, predictionCache)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.LoadActive(ctx); err != nil {
		log.Printf("No active model loaded at startup: %v", err)
	}
	cancel()

	if cfg.KafkaEnabled {
		consumer, err := kafka.NewFeedbackConsumer(kafka.FeedbackConsumerConfig{
			Brokers: kafka.GetKafkaBrokers(),
			Topic:   kafka.GetKafkaTopic(),
			GroupID: kafka.GetKafkaGroupID(),
			Service: svc,
		})
		if err != nil {
			log.Fatalf("Failed to create Kafka feedback consumer: %v", err)
		}
		consumerCtx, consumerCancel := context.WithCancel(context.Background())
		defer consumerCancel()
		if err := consumer.Start(consumerCtx); err != nil {
			log.Fatalf("Failed to start Kafka feedback consumer: %v", err)
		}
		defer consumer.Close()
	}

	addr := ":" + cfg.Port
	r := api.NewRouter(svc)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/train")
	log.Println("  POST /api/predict")
	log.Println("  POST /api/predict/single")
	log.Println("  POST /api/feedback")
	log.Println("  GET  /api/feedback/stats")
	log.Println("  POST /api/model/retrain")
	log.Println("  GET  /api/model/versions")
	log.Println("  GET  /api/model/importance")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeBlobStore picks the S3-backed model store when S3_BUCKET is set,
// otherwise falls back to a local directory.
func initializeBlobStore(cfg AppConfig) (store.BlobStore, error) {
	if cfg.S3Bucket == "" {
		log.Printf("Storing model blobs under %s", cfg.ModelDir)
		return store.NewLocalBlobStore(cfg.ModelDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := common.NewS3(ctx, common.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Storing model blobs in S3 bucket %q with prefix %q", cfg.S3Bucket, cfg.S3Prefix)
	return store.NewS3BlobStore(client, cfg.S3Bucket, cfg.S3Prefix), nil
}
