package background

import (
	"context"
	"log"
	"sync"
	"time"

	"dukamart/internal/caching"
	"dukamart/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const (
	cartIdleTTL       = 7 * 24 * time.Hour
	lowStockBatchSize = 100
)

// JobScheduler manages the storefront's recurring background jobs
type JobScheduler struct {
	scheduler     gocron.Scheduler
	cacheSvc      caching.CacheService
	inventoryRepo repositories.InventoryRepository
	jobs          map[string]gocron.Job
	mu            sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(cacheSvc caching.CacheService, inventoryRepo repositories.InventoryRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		cacheSvc:      cacheSvc,
		inventoryRepo: inventoryRepo,
		jobs:          make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Abandoned cart sweep - every hour
	cartJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepIdleCarts),
		gocron.WithName("cart-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create cart sweep job: %v", err)
	} else {
		js.jobs["cart-sweep"] = cartJob
	}

	// Low stock alerts - every 30 minutes
	stockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.reportLowStock),
		gocron.WithName("low-stock-alerts"),
	)
	if err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	} else {
		js.jobs["low-stock"] = stockJob
	}

	// Listing cache invalidation - every 6 hours, keeps stale pages bounded
	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.refreshListingCache),
		gocron.WithName("listing-cache-refresh"),
	)
	if err != nil {
		log.Printf("Failed to create cache refresh job: %v", err)
	} else {
		js.jobs["cache-refresh"] = cacheJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// sweepIdleCarts re-applies the idle TTL to carts Redis left without one
func (js *JobScheduler) sweepIdleCarts() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	touched, err := js.cacheSvc.ExpireIdleCarts(ctx, cartIdleTTL)
	if err != nil {
		log.Printf("WARN: cart expiry sweep failed: %v", err)
		return
	}
	if touched > 0 {
		log.Printf("Cart expiry sweep touched %d carts", touched)
	}
}

// reportLowStock logs variants at or below their threshold for the ops channel
func (js *JobScheduler) reportLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	inventories, err := js.inventoryRepo.ListLowStock(ctx, lowStockBatchSize)
	if err != nil {
		log.Printf("WARN: low stock check failed: %v", err)
		return
	}
	for _, inv := range inventories {
		log.Printf("WARN: low stock: variant %s has %d units (threshold %d)",
			inv.VariantID.String(), inv.Quantity, inv.LowStockThreshold)
	}
}

func (js *JobScheduler) refreshListingCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := js.cacheSvc.InvalidateProductListing(ctx); err != nil {
		log.Printf("WARN: listing cache refresh failed: %v", err)
	}
}

// JobNames returns the registered job names, for diagnostics
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
