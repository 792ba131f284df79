package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldBucket      = "bucket"
	FieldBackend     = "backend"
	FieldTxID        = "transaction_id"
	FieldGoalID      = "goal_id"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldEventKind   = "event_kind"
	FieldSheetsRef   = "sheets_ref"
	FieldRecurrence  = "recurrence_id"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentFinance = "finance"
	ComponentGoals   = "goals"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
)
