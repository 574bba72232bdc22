package domain

// ColumnInput is one entry of a board form. ID is empty for columns added
// in the form; BoardID is accepted for round-tripping a full Board and is
// never trusted.
type ColumnInput struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	BoardID string `json:"boardId,omitempty"`
}

// CreateBoardInput holds the data needed to create a board and its columns.
type CreateBoardInput struct {
	Title   string        `json:"title"`
	Columns []ColumnInput `json:"columns"`
}

// UpdateBoardInput is the edited board. Columns carrying an ID keep it.
type UpdateBoardInput struct {
	ID      string        `json:"id,omitempty"`
	Title   string        `json:"title"`
	Columns []ColumnInput `json:"columns"`
}

// CreateTaskInput holds the data for a new task. BoardID is a hint only:
// the owning board is derived from the Status column.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	BoardID     string `json:"boardId,omitempty"`
}

// UpdateTaskInput carries the changed fields of a task. Pointers separate
// an omitted field from one set to its zero value. ID and BoardID are
// accepted so a full Task can be submitted; both are ignored.
type UpdateTaskInput struct {
	ID          string  `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	BoardID     string  `json:"boardId,omitempty"`
}

// DragResult is reported by the drag gesture layer when a task card is
// released. A nil DestinationColumnID means the card was dropped outside
// any column.
type DragResult struct {
	SourceColumnID      string  `json:"sourceColumnId"`
	DestinationColumnID *string `json:"destinationColumnId"`
	DestinationIndex    int     `json:"destinationIndex"`
	TaskID              string  `json:"taskId"`
}

// Titles returns the column titles in input order.
func (in CreateBoardInput) Titles() []string {
	return columnTitles(in.Columns)
}

// Titles returns the column titles in input order.
func (in UpdateBoardInput) Titles() []string {
	return columnTitles(in.Columns)
}

func columnTitles(cols []ColumnInput) []string {
	titles := make([]string, 0, len(cols))
	for _, c := range cols {
		titles = append(titles, c.Title)
	}
	return titles
}

// StringPtr is a helper for building UpdateTaskInput values.
func StringPtr(s string) *string {
	return &s
}
