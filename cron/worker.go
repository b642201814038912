package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rescuehub/config"
	incidentRepo "rescuehub/database/repository/incident"
	"rescuehub/models"
	"rescuehub/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeIncidentPersist = "incident:persist"

// NewIncidentPersistTask wraps a snapshot for the background queue.
func NewIncidentPersistTask(snap models.IncidentSnapshot) (*asynq.Task, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeIncidentPersist, payload), nil
}

// NewQueueClient returns an asynq client for enqueueing persistence tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitIncidentWorker runs the async worker in background. Each task merges
// the snapshot into the incident store and, when the session dispatched,
// pushes the event to the operator channel.
func InitIncidentWorker(repo incidentRepo.IncidentRepository, notifier notification.DispatchNotifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeIncidentPersist, handleIncidentPersist(repo, notifier))

	go monitorRedisConnection()

	go func() {
		log.Println("[IncidentWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[IncidentWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[IncidentWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleIncidentPersist(repo incidentRepo.IncidentRepository, notifier notification.DispatchNotifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var snap models.IncidentSnapshot
		if err := json.Unmarshal(task.Payload(), &snap); err != nil {
			log.Printf("[IncidentPersist] invalid payload: %v", err)
			return err
		}

		rec, err := repo.UpsertSnapshot(ctx, snap)
		if err != nil {
			log.Printf("[IncidentPersist] upsert failed for session %s: %v", snap.SessionID, err)
			return err
		}
		log.Printf("[IncidentPersist] merged session %s into record %s (%d history entries)",
			snap.SessionID, rec.ID, len(rec.History))

		if snap.Dispatched && notifier != nil {
			if err := notifier.NotifyDispatch(ctx, snap); err != nil {
				// The record is already persisted; do not requeue for a
				// failed push.
				log.Printf("[IncidentPersist] dispatch push failed: %v", err)
			}
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[IncidentWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
