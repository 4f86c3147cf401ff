package diff

import "fmt"

// ChangeType is the transition a field made between two snapshots.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeModified  ChangeType = "modified"
	ChangeRemoved   ChangeType = "removed"
	ChangeUnchanged ChangeType = "unchanged"
)

// FieldChange records one field's transition. Old is absent only for added
// changes, New only for removed ones. OldDisplay/NewDisplay carry the
// human-readable rendering ("2.35 MB", "12 files", "Not set").
type FieldChange struct {
	Field      string     `json:"field"`
	Type       ChangeType `json:"type"`
	Old        any        `json:"old,omitempty"`
	New        any        `json:"new,omitempty"`
	OldDisplay string     `json:"oldDisplay"`
	NewDisplay string     `json:"newDisplay"`
}

// CompareField compares two values of a named schema field and returns the
// resulting FieldChange. oldOK/newOK report whether the field was present in
// the respective snapshot; a field absent from both compares as unchanged.
// Unknown field names fall back to plain equality and default formatting, so
// a forward-compat field degrades instead of failing.
func CompareField(field string, oldVal any, oldOK bool, newVal any, newOK bool) FieldChange {
	spec := schemaByName[field]

	fc := FieldChange{
		Field:      field,
		OldDisplay: displayValue(spec, oldVal, oldOK),
		NewDisplay: displayValue(spec, newVal, newOK),
	}
	if oldOK {
		fc.Old = oldVal
	}
	if newOK {
		fc.New = newVal
	}

	switch {
	case !oldOK && !newOK:
		fc.Type = ChangeUnchanged
	case !oldOK:
		fc.Type = ChangeAdded
	case !newOK:
		fc.Type = ChangeRemoved
	case valuesEqual(spec, oldVal, newVal):
		fc.Type = ChangeUnchanged
	default:
		fc.Type = ChangeModified
	}
	return fc
}

func valuesEqual(spec *fieldSpec, a, b any) bool {
	if spec != nil && spec.equal != nil {
		return spec.equal(a, b)
	}
	return a == b
}

func displayValue(spec *fieldSpec, v any, ok bool) string {
	if !ok {
		return AbsentDisplay
	}
	if spec != nil && spec.format != nil {
		return spec.format(v)
	}
	return fmt.Sprint(v)
}
