package workers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/providers"
)

const narrativeConsumerGroup = "narrative-workers"

// narrative text outlives the worth-knowing entry it decorates so a
// recomputed list can reuse it
const narrativeCacheTTL = 6 * time.Hour

// NarrativeWorker consumes justification requests from the Redis Stream,
// calls the text service, and caches the generated sentence where the
// worth-knowing engine overlays it.
type NarrativeWorker struct {
	workerID   string
	redisQueue *common.RedisQueueService
	narrative  *providers.NarrativeProvider
	cache      common.CacheInterface
}

// NewNarrativeWorker creates a new narrative worker
func NewNarrativeWorker(
	workerID string,
	redisQueue *common.RedisQueueService,
	narrative *providers.NarrativeProvider,
	cache common.CacheInterface,
) *NarrativeWorker {
	return &NarrativeWorker{
		workerID:   workerID,
		redisQueue: redisQueue,
		narrative:  narrative,
		cache:      cache,
	}
}

// Start spawns numWorkers consumers on the narrative stream and blocks until
// the context is cancelled.
func (w *NarrativeWorker) Start(ctx context.Context, numWorkers int) error {
	log.Printf("[NarrativeWorker] Starting %d workers with ID prefix: %s", numWorkers, w.workerID)

	if err := w.redisQueue.CreateConsumerGroup(ctx, common.NarrativeStreamName, narrativeConsumerGroup); err != nil {
		log.Printf("[NarrativeWorker] Warning - failed to create consumer group: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		workerName := fmt.Sprintf("%s-worker-%d", w.workerID, i)

		go func(workerName string) {
			defer wg.Done()
			w.processQueue(ctx, workerName)
		}(workerName)
	}

	wg.Wait()
	log.Printf("[NarrativeWorker] All workers stopped")
	return nil
}

// processQueue continuously processes narrative requests
func (w *NarrativeWorker) processQueue(ctx context.Context, workerName string) {
	log.Printf("[%s] Started processing queue: %s", workerName, common.NarrativeStreamName)

	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Processed: %d, Errors: %d", workerName, processedCount, errorCount)
			return
		default:
			item, messageID, err := w.redisQueue.Dequeue(ctx, common.NarrativeStreamName, narrativeConsumerGroup, workerName, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Error dequeuing: %v", workerName, err)
				errorCount++
				time.Sleep(time.Second)
				continue
			}
			if item == nil {
				// Timeout, nothing waiting
				continue
			}

			if err := w.processRequest(ctx, item); err != nil {
				log.Printf("[%s] Error processing request for resort %s: %v", workerName, item.ResortID, err)
				errorCount++
				// Leave unacked so a stale-claim pass can retry it
				continue
			}

			if err := w.redisQueue.Ack(ctx, common.NarrativeStreamName, narrativeConsumerGroup, messageID); err != nil {
				log.Printf("[%s] Warning - failed to ack message %s: %v", workerName, messageID, err)
			}
			processedCount++
		}
	}
}

func (w *NarrativeWorker) processRequest(ctx context.Context, req *common.NarrativeRequest) error {
	key := constants.CacheKeyNarrative(req.ResortID, req.WindowDays)
	if _, found := w.cache.Get(key); found {
		// Another worker got there first
		return nil
	}

	text, err := w.narrative.GenerateJustification(ctx, req.ResortName, req.PassType, req.WindowDays, req.SnowTotalIn, req.DiffIn, req.Ratio)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("text service returned an empty justification")
	}

	w.cache.Set(key, text, narrativeCacheTTL)
	return nil
}
