package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldOperation     = "operation"
	FieldPath          = "path"
	FieldTransactionID = "transaction_id"
	FieldDateEpoch     = "date_epoch"
	FieldCategory      = "category"
	FieldCategories    = "categories"
	FieldDescription   = "description"
	FieldValueCents    = "value_cents"
	FieldCCValueCents  = "cc_value_cents"
	FieldDateRange     = "date_range"
	FieldValueRange    = "value_range"
	FieldRows          = "rows"
	FieldSuccess       = "success"
	FieldCacheHit      = "cache_hit"
	FieldFiltered      = "filtered"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpCount   = "count"
	OpOpen    = "open"
	OpMigrate = "migrate"
	OpClose   = "close"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeDatabase = "database_error"
	ErrorTypeConflict = "conflict_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds error type field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds the persisted fields of a transaction.
// id is the textual form so an unset id logs as "none".
func (f LogFields) WithTransaction(id string, dateEpoch int64, category, description string, valueCents, ccValueCents int64) LogFields {
	f[FieldTransactionID] = id
	f[FieldDateEpoch] = dateEpoch
	f[FieldCategory] = category
	f[FieldDescription] = description
	f[FieldValueCents] = valueCents
	f[FieldCCValueCents] = ccValueCents
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
