package shared

type ContextKey string

const (
	RunIDKey    ContextKey = "runId"
	CellNameKey ContextKey = "cellName"
)
