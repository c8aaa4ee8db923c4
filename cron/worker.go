package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"coachflow/config"
	coachRepo "coachflow/database/repository/coach"
	"coachflow/services/optimizer"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// Task types handled by the optimizer worker.
const (
	TypeSuggestionExpire = "suggestion:expire"
	TypeOptimizerScanAll = "optimizer:scan_all"
	TypeOptimizerScan    = "optimizer:scan"
)

// scanWindowDays is the range the nightly scan analyzes per coach.
const scanWindowDays = 14

// ScanPayload carries the coach to analyze.
type ScanPayload struct {
	CoachID string `json:"coach_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitOptimizerWorker runs the async worker and periodic scheduler in the
// background: an hourly expire sweep and a nightly per-coach analysis scan.
func InitOptimizerWorker(svc optimizer.GapOptimizerService, coaches coachRepo.CoachRepository) {
	opts := redisOpts()

	srv := asynq.NewServer(
		opts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSuggestionExpire, handleExpireSweep(svc))
	mux.HandleFunc(TypeOptimizerScanAll, handleScanAll(coaches, client))
	mux.HandleFunc(TypeOptimizerScan, handleCoachScan(svc))

	scheduler := asynq.NewScheduler(opts, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeSuggestionExpire, nil)); err != nil {
		log.Printf("[OptimizerWorker] failed to register expire sweep: %v", err)
	}
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypeOptimizerScanAll, nil)); err != nil {
		log.Printf("[OptimizerWorker] failed to register nightly scan: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[OptimizerWorker] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[OptimizerWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[OptimizerWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[OptimizerWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[OptimizerWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpireSweep(svc optimizer.GapOptimizerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		count, err := svc.ExpireOldSuggestions()
		if err != nil {
			log.Printf("[ExpireSweep] sweep failed: %v", err)
			return err
		}
		if count > 0 {
			log.Printf("[ExpireSweep] expired %d stale suggestions", count)
		}
		return nil
	}
}

// handleScanAll fans the nightly scan out into one task per coach.
func handleScanAll(coaches coachRepo.CoachRepository, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ids, err := coaches.ListIDs()
		if err != nil {
			log.Printf("[OptimizerScan] failed to list coaches: %v", err)
			return err
		}
		for _, id := range ids {
			payload, err := json.Marshal(ScanPayload{CoachID: id})
			if err != nil {
				continue
			}
			if _, err := client.EnqueueContext(ctx, asynq.NewTask(TypeOptimizerScan, payload)); err != nil {
				log.Printf("[OptimizerScan] failed to enqueue scan for coach %s: %v", id, err)
			}
		}
		return nil
	}
}

func handleCoachScan(svc optimizer.GapOptimizerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ScanPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[OptimizerScan] invalid payload: %v", err)
			return err
		}

		start := time.Now()
		end := start.AddDate(0, 0, scanWindowDays)
		opportunities := svc.AnalyzeOpportunities(p.CoachID, start.Format("2006-01-02"), end.Format("2006-01-02"))
		if len(opportunities) == 0 {
			return nil
		}

		suggestions, err := svc.CreateSuggestions(p.CoachID, opportunities)
		if err != nil {
			log.Printf("[OptimizerScan] failed to save suggestions for coach %s: %v", p.CoachID, err)
			return err
		}
		log.Printf("[OptimizerScan] created %d suggestions for coach %s", len(suggestions), p.CoachID)
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
			log.Printf("[OptimizerWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
