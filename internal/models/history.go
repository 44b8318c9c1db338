package models

import "time"

// HistoryEntry is one generated prompt
type HistoryEntry struct {
	ID       string    `json:"id,omitempty"`
	Category Category  `json:"category"`
	Date     time.Time `json:"date"`
	Prompt   string    `json:"prompt"`
}

// ExportDocument is the JSON export of the active prompt
type ExportDocument struct {
	Category  Category    `json:"category"`
	Generated string      `json:"generated"`
	Prompt    string      `json:"prompt"`
	Fields    FieldValues `json:"fields"`
}
