package engine

import (
	"fmt"
	"strings"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// Messages shown next to the offending form field.
const (
	msgEmptyBoardTitle  = "Board name cannot be empty."
	msgEmptyColumnTitle = "Column name cannot be empty."
	msgDuplicateColumn  = "Column names must be unique."
	msgNoColumns        = "Add at least one column."
	msgEmptyTaskTitle   = "Task title cannot be empty."
	msgMissingStatus    = "Please select a status."
)

// NormalizeTitle is the form two column titles are compared in.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ValidateBoardInput checks a board title and its column titles. Every
// failure is reported; a nil result means the input is valid. All members
// of a duplicate group are flagged.
func ValidateBoardInput(title string, columns []string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Kind: domain.KindEmptyTitle, Message: msgEmptyBoardTitle})
	}
	if len(columns) == 0 {
		errs = append(errs, domain.FieldError{Field: "columns", Kind: domain.KindNoColumns, Message: msgNoColumns})
		return errs
	}

	counts := make(map[string]int, len(columns))
	for _, c := range columns {
		counts[NormalizeTitle(c)]++
	}
	for i, c := range columns {
		field := columnField(i)
		norm := NormalizeTitle(c)
		switch {
		case norm == "":
			errs = append(errs, domain.FieldError{Field: field, Kind: domain.KindEmptyColumnTitle, Message: msgEmptyColumnTitle})
		case counts[norm] > 1:
			errs = append(errs, domain.FieldError{Field: field, Kind: domain.KindDuplicateColumnTitle, Message: msgDuplicateColumn})
		}
	}
	return errs
}

// ValidateTaskInput checks a task title and that status names one of the
// given board columns.
func ValidateTaskInput(title, status string, columns []domain.Column) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if fe, ok := checkTaskTitle(title); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkTaskStatus(status, columns); !ok {
		errs = append(errs, fe)
	}
	return errs
}

func checkTaskTitle(title string) (domain.FieldError, bool) {
	if strings.TrimSpace(title) == "" {
		return domain.FieldError{Field: "title", Kind: domain.KindEmptyTitle, Message: msgEmptyTaskTitle}, false
	}
	return domain.FieldError{}, true
}

func checkTaskStatus(status string, columns []domain.Column) (domain.FieldError, bool) {
	if status != "" {
		for _, c := range columns {
			if c.ID == status {
				return domain.FieldError{}, true
			}
		}
	}
	return domain.FieldError{Field: "status", Kind: domain.KindMissingStatus, Message: msgMissingStatus}, false
}

func columnField(i int) string {
	return fmt.Sprintf("columns[%d].title", i)
}
