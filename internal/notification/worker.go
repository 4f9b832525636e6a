package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"warehouse-twin-backend/internal/model"
	"warehouse-twin-backend/internal/store"
	"warehouse-twin-backend/internal/warranty"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// alertPayload is the JSON body pushed to subscribed browsers.
type alertPayload struct {
	WarehouseID   uint             `json:"warehouse_id"`
	WarehouseName string           `json:"warehouse_name"`
	Message       string           `json:"message"`
	Alerts        []warranty.Alert `json:"alerts"`
}

// WorkerPool manages a pool of workers pushing warranty alerts. Jobs are
// warehouse ids; each job scans the warehouse and notifies its followers.
type WorkerPool struct {
	size          int
	jobs          chan uint
	store         store.Store
	webpush       *webpush.Options
	sender        NotificationSender
	daysThreshold int
	now           func() time.Time
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options, daysThreshold int) *WorkerPool {
	if daysThreshold <= 0 {
		daysThreshold = warranty.DefaultDaysThreshold
	}
	return &WorkerPool{
		size:          size,
		jobs:          make(chan uint, size),
		store:         s,
		webpush:       webpushOptions,
		sender:        &WebPushSender{},
		daysThreshold: daysThreshold,
		now:           time.Now,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case warehouseID := <-wp.jobs:
			log.Printf("Worker %d scanning warehouse %d", id, warehouseID)
			wp.sendAlertsForWarehouse(ctx, warehouseID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a warehouse scan job to the worker pool.
func (wp *WorkerPool) Dispatch(warehouseID uint) {
	wp.jobs <- warehouseID
}

// sendAlertsForWarehouse runs the warranty scan for one warehouse and pushes
// the result to every subscription following it. Nothing is sent when the
// scan comes back empty.
func (wp *WorkerPool) sendAlertsForWarehouse(ctx context.Context, warehouseID uint) {
	subscriptions, err := wp.store.SubscriptionsForWarehouse(ctx, warehouseID)
	if err != nil {
		log.Printf("Error fetching subscriptions for warehouse %d: %v", warehouseID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	alerts, err := warranty.Scan(ctx, wp.store, warehouseID, wp.daysThreshold, wp.now().UTC())
	if err != nil {
		log.Printf("Warranty scan for warehouse %d failed: %v", warehouseID, err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	warehouseLabel := fmt.Sprintf("%d", warehouseID)
	if wh, err := wp.store.Warehouse(ctx, warehouseID); err != nil {
		log.Printf("Error fetching warehouse %d: %v", warehouseID, err)
	} else if wh.Name != "" {
		warehouseLabel = wh.Name
	}

	payload, err := json.Marshal(alertPayload{
		WarehouseID:   warehouseID,
		WarehouseName: warehouseLabel,
		Message:       fmt.Sprintf("%d device warranties in %s need attention", len(alerts), warehouseLabel),
		Alerts:        alerts,
	})
	if err != nil {
		log.Printf("Error marshalling alert payload for warehouse %d: %v", warehouseID, err)
		return
	}

	log.Printf("Sending %d notifications for warehouse %d", len(subscriptions), warehouseID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DB().WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
