package validation

// FieldErrors maps a field name to its single current message
type FieldErrors map[string]string

// ErrorSet is the outcome of a rule set: ordered global messages plus
// per-record field messages keyed by record id.
type ErrorSet struct {
	Global []string               `json:"global"`
	ByID   map[string]FieldErrors `json:"byId,omitempty"`
}

// Empty reports whether the set holds no messages at all
func (e ErrorSet) Empty() bool {
	return len(e.Global) == 0 && len(e.ByID) == 0
}

// Field returns the message for one record field, or "" when there is none
func (e ErrorSet) Field(id, field string) string {
	if e.ByID == nil {
		return ""
	}
	return e.ByID[id][field]
}

// Fields returns every field message for a record
func (e ErrorSet) Fields(id string) FieldErrors {
	if e.ByID == nil {
		return nil
	}
	return e.ByID[id]
}

func (e *ErrorSet) addGlobal(msg string) {
	e.Global = append(e.Global, msg)
}

// addField records a field message, keeping the first one per field
func (e *ErrorSet) addField(id, field, msg string) {
	if e.ByID == nil {
		e.ByID = make(map[string]FieldErrors)
	}
	fields, ok := e.ByID[id]
	if !ok {
		fields = make(FieldErrors)
		e.ByID[id] = fields
	}
	if _, exists := fields[field]; exists {
		return
	}
	fields[field] = msg
}

// Merge concatenates global messages in argument order and unions field messages
func Merge(sets ...ErrorSet) ErrorSet {
	var out ErrorSet
	for _, s := range sets {
		out.Global = append(out.Global, s.Global...)
		for id, fields := range s.ByID {
			for field, msg := range fields {
				out.addField(id, field, msg)
			}
		}
	}
	return out
}
