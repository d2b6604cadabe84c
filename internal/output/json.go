package output

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ListResponse wraps a collection listing.
type ListResponse struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
	Items any    `json:"items"`
}

// RecordResponse reports the outcome of a mutation.
type RecordResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	ID     string `json:"id,omitempty"`
	Record any    `json:"record,omitempty"`
}

// StatusResponse is a bare status with an optional message.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error in JSON output.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintList outputs a collection. A nil slice is printed as [].
func PrintList[T any](j *JSONFormatter, kind string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return j.JSON(ListResponse{Kind: kind, Count: len(items), Items: items})
}

// PrintRecord outputs a mutated record.
func (j *JSONFormatter) PrintRecord(status, kind, id string, record any) error {
	return j.JSON(RecordResponse{Status: status, Kind: kind, ID: id, Record: record})
}

// PrintStatus outputs a status message.
func (j *JSONFormatter) PrintStatus(status, message string) error {
	return j.JSON(StatusResponse{Status: status, Message: message})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, category, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Category:   category,
		Suggestion: suggestion,
	})
}
