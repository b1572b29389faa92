// Package dashboard holds the display records shown on the cover letter dashboard.
package dashboard

// EstimatedMinutesPerLetter is the time a single generated letter is credited with saving.
const EstimatedMinutesPerLetter = 30

// Stat is a single labelled value on the stats panel.
type Stat struct {
	Name string `json:"name" yaml:"name"`
	Stat string `json:"stat" yaml:"stat"`
}

// HistoryRow is one previously generated cover letter in the history table.
type HistoryRow struct {
	Name  string `json:"name" yaml:"name"`   // Company name
	Title string `json:"title" yaml:"title"` // Job title
	Date  string `json:"date" yaml:"date"`   // Display date, already formatted
	Key   string `json:"key" yaml:"key"`
}

// Data is the full set of records rendered by the dashboard.
type Data struct {
	Stats   []Stat       `json:"stats" yaml:"stats"`
	History []HistoryRow `json:"history" yaml:"history"`
}

// Clone returns a deep copy so callers can never modify loaded records.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{
		Stats:   make([]Stat, len(d.Stats)),
		History: make([]HistoryRow, len(d.History)),
	}
	copy(out.Stats, d.Stats)
	copy(out.History, d.History)
	return out
}

// Find returns the history row with the given key.
func (d *Data) Find(key string) (HistoryRow, bool) {
	for _, row := range d.History {
		if row.Key == key {
			return row, true
		}
	}
	return HistoryRow{}, false
}
