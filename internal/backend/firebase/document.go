package firebase

import (
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"planify/internal/service"
)

// encodeTask converts a task into document fields. Timestamps are stored as
// RFC 3339 strings.
func encodeTask(t service.Task) map[string]any {
	fields := map[string]any{
		fieldTitle:     t.Title,
		fieldIsChecked: t.IsChecked,
		fieldDueDate:   nil,
		fieldCreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		fieldUpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		fields[fieldDueDate] = t.DueDate.UTC().Format(time.RFC3339)
	}
	return fields
}

func encodePatch(p service.TaskPatch) map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields[fieldTitle] = *p.Title
	}
	if p.IsChecked != nil {
		fields[fieldIsChecked] = *p.IsChecked
	}
	if p.DueDate != nil {
		fields[fieldDueDate] = p.DueDate.UTC().Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		fields[fieldUpdatedAt] = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return fields
}

// patchUpdates lists the field updates for p, ordered by path.
func patchUpdates(p service.TaskPatch) []firestore.Update {
	fields := encodePatch(p)
	updates := make([]firestore.Update, 0, len(fields))
	for path, v := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: v})
	}
	slices.SortFunc(updates, func(a, b firestore.Update) int { return strings.Compare(a.Path, b.Path) })
	return updates
}

// decodeTask reads a document. ok is false when title is missing or blank,
// or isChecked is not a boolean.
func decodeTask(id string, data map[string]any) (service.Task, bool) {
	title, _ := data[fieldTitle].(string)
	if strings.TrimSpace(title) == "" {
		return service.Task{}, false
	}
	checked, ok := data[fieldIsChecked].(bool)
	if !ok {
		return service.Task{}, false
	}

	t := service.Task{
		ID:        id,
		Title:     title,
		IsChecked: checked,
		CreatedAt: timeField(data[fieldCreatedAt]),
		UpdatedAt: timeField(data[fieldUpdatedAt]),
	}
	if due := timeField(data[fieldDueDate]); !due.IsZero() {
		t.DueDate = &due
	}
	return t, true
}

// timeField accepts RFC 3339 strings and native timestamps. Anything else
// reads as the zero time.
func timeField(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		if ts, err := time.Parse(time.RFC3339, x); err == nil {
			return ts
		}
	}
	return time.Time{}
}
