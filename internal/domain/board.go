package domain

// DefaultColumnTitles are the lanes offered when a new board is drafted.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

type Board struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// Column is a lane of one board. BoardID is a back-reference only; the
// board's Columns slice owns the column and its position.
type Column struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"boardId"`
}

// Task is filed under exactly one column through Status, which holds the
// column id. BoardID always mirrors that column's BoardID.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	BoardID     string `json:"boardId"`
}

// Clone returns a copy of the board that shares no column storage.
func (b Board) Clone() Board {
	cols := make([]Column, len(b.Columns))
	copy(cols, b.Columns)
	b.Columns = cols
	return b
}

// HasColumn reports whether id is one of the board's columns.
func (b Board) HasColumn(id string) bool {
	for _, c := range b.Columns {
		if c.ID == id {
			return true
		}
	}
	return false
}
