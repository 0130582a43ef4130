package shared

// Asynq task types and queues.
const (
	TypeDeleteGameImage  = "game:delete_image"
	TypeBackfillSlugs    = "catalog:backfill_slugs"

	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteGameImagePayload asks the worker to remove an image reference
// from object storage. Best-effort cleanup after update/delete.
type DeleteGameImagePayload struct {
	Image string `json:"image"`
}

// BackfillSlugsPayload triggers the scheduled slug backfill. Empty for
// now; kept as a struct so the schema can grow.
type BackfillSlugsPayload struct{}
