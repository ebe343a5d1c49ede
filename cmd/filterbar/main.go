package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-filters/pkg/common"
	"github.com/matst80/slask-filters/pkg/messaging"
	"github.com/matst80/slask-filters/pkg/routes"
	"github.com/matst80/slask-filters/pkg/server"
	"github.com/matst80/slask-filters/pkg/storage"
	"github.com/matst80/slask-filters/pkg/tracking"
	"github.com/matst80/slask-filters/pkg/types"
)

var envFile = flag.String("env", ".env", "optional env file to load")

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// listenForSettingsChange reloads the attribute file on every
// settings_change message of the country.
func listenForSettingsChange(ctx context.Context, conn *amqp.Connection, country string, reloader *server.AttributeReloader) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	return messaging.ListenToTopic(ch, country, messaging.SettingsChanged, func(d amqp.Delivery) error {
		log.Printf("Got settings change, reloading custom attributes")
		return reloader.Reload(ctx)
	})
}

func main() {
	flag.Parse()
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load %s: %v", *envFile, err)
	}

	country := getEnv("COUNTRY", "se")
	listenAddress := getEnv("LISTEN_ADDRESS", ":8080")
	diskStorage := storage.NewDiskStorage(country, getEnv("DATA_DIR", "data"))

	attributes := types.NewCustomAttributeConfig()
	if err := diskStorage.LoadCustomAttributes(attributes); err != nil {
		log.Printf("Could not load custom attributes from disk: %v", err)
	}
	messages, err := diskStorage.LoadMessages()
	if err != nil {
		log.Printf("Could not load messages, using defaults: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hooks := []common.ShutdownHook{}
	reloader := &server.AttributeReloader{Disk: diskStorage, Config: attributes}

	if redisUrl := os.Getenv("REDIS_URL"); redisUrl != "" {
		store := server.NewAttributeStore(redisUrl, os.Getenv("REDIS_PASSWORD"), 0, attributes)
		if err := store.Load(ctx); err != nil {
			log.Printf("Could not load custom attributes from redis: %v", err)
		}
		store.Listen(ctx)
		reloader.Store = store
		hooks = append(hooks, func(ctx context.Context) error {
			return store.Close()
		})
		log.Printf("Custom attributes synced from redis, url: %s", redisUrl)
	}

	var tracker types.Tracking
	if amqpUrl, ok := os.LookupEnv("RABBIT_HOST"); ok && amqpUrl != "" {
		conn, err := amqp.Dial(amqpUrl)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ: %v", err)
		} else {
			if err = listenForSettingsChange(ctx, conn, country, reloader); err != nil {
				log.Printf("Failed to listen for settings changes: %v", err)
			}
			hooks = append(hooks, func(ctx context.Context) error {
				return conn.Close()
			})
		}

		rabbitTracking, err := tracking.NewRabbitTracking(amqpUrl, country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			tracker = rabbitTracking
			hooks = append(hooks, func(ctx context.Context) error {
				return rabbitTracking.Close()
			})
		}
	}

	log.Printf("Custom attributes: %v", attributes.Names())

	srv := &server.FilterServer{
		Attributes: attributes,
		Messages:   messages,
		Routes:     routes.RouteConfiguration(),
		Tracking:   tracker,
	}
	handler, err := srv.Handler()
	if err != nil {
		log.Fatalf("Could not create handler: %v", err)
	}

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeoutConfig())
	httpServer := common.NewServerWithTimeouts(listenAddress, handler, timeouts)
	if err = common.RunServerWithShutdown(ctx, httpServer, "filterbar", timeouts, hooks...); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
