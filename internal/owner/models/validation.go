package models

import "sort"

// ValidationResult maps a field name to the violations reported for it.
// An empty result means the owner is acceptable for persistence; any key,
// even one without messages, makes it unacceptable.
type ValidationResult map[string][]string

// Add records a violation for field.
func (v ValidationResult) Add(field, message string) {
	v[field] = append(v[field], message)
}

// HasErrors reports whether the result names any field at all.
func (v ValidationResult) HasErrors() bool {
	return len(v) > 0
}

// Fields returns the reported field names in sorted order.
func (v ValidationResult) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
