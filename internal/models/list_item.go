package models

// ListItem is one row fetched from a backend list endpoint. Rendered read-only.
type ListItem map[string]any
