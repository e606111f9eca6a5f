// Package handler provides HTTP request handlers for the inventory API.
package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/stockroom/internal/model"
)

// Version is the application version.
const Version = "1.0.0"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status string `json:"status"`
}

// Notifier delivers newly created items to live subscribers.
type Notifier interface {
	Broadcast(item *model.Item)
}

// Inventory and notification metrics.
var (
	inventoryItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_items",
			Help: "Number of items currently held in the inventory",
		},
	)

	itemsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_items_created_total",
			Help: "Total number of items created",
		},
	)

	itemsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_items_deleted_total",
			Help: "Total number of items deleted",
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Number of open WebSocket connections",
		},
	)

	broadcastMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcast_messages_total",
			Help: "Total number of notifications queued for WebSocket clients",
		},
	)

	broadcastDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcast_dropped_total",
			Help: "Total number of notifications skipped because a client was closing or backed up",
		},
	)
)
