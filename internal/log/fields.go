package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldBillName  = "bill_name"
	FieldBillID    = "bill_id"
	FieldRecords   = "records"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldError     = "error"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentHistory = "history"
	ComponentSheets  = "sheets"
)
