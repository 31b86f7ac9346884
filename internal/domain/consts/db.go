package consts

// Tables
const (
	DBBatches    = "batches"
	DBBatchItems = "batch_items"
	DBQueue      = "queue"
)

// Batches
const (
	QBatchID             = "id"
	QBatchMode           = "mode"
	QBatchTotal          = "total"
	QBatchSucceeded      = "succeeded"
	QBatchFailed         = "failed"
	QBatchCancelled      = "cancelled"
	QBatchClassification = "classification"
	QBatchStartedAt      = "started_at"
	QBatchFinishedAt     = "finished_at"
)

// Batch items
const (
	QItemID         = "id"
	QItemBatchID    = "batch_id"
	QItemURL        = "url"
	QItemSite       = "site"
	QItemStatus     = "status"
	QItemError      = "error_message"
	QItemFinishedAt = "finished_at"
)

// Queue
const (
	QQueueID      = "id"
	QQueueURL     = "url"
	QQueueAddedAt = "added_at"
)
