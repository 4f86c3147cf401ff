package diff

import "github.com/bakerapp/baker/internal/breadcrumbs"

// ChangeSummary counts field transitions by type. Unchanged fields are not
// counted.
type ChangeSummary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Removed  int `json:"removed"`
}

// Total returns the number of counted changes.
func (s ChangeSummary) Total() int {
	return s.Added + s.Modified + s.Removed
}

// ProjectDiff is the field-by-field diff of one project's snapshots. Changes
// holds every declared field present in at least one snapshot, in schema
// order, including unchanged ones; fields absent from both snapshots are
// omitted. The same shape serves as the meaningful diff (maintenance fields
// filtered out).
type ProjectDiff struct {
	Changes    []FieldChange `json:"changes"`
	HasChanges bool          `json:"hasChanges"`
	Summary    ChangeSummary `json:"summary"`
}

// Diff walks the closed schema in its fixed order and compares the current
// (on disk) snapshot against the head (freshly computed) snapshot. Either
// side may be nil, meaning no snapshot exists there: a nil current makes
// every present head field "added", a nil head makes every present current
// field "removed".
//
// The walk is deterministic and the function is pure, so identical inputs
// always produce identical diffs, and Diff(a, a) reports no changes in
// either return value.
func Diff(current, head *breadcrumbs.Snapshot) (full, meaningful ProjectDiff) {
	changes := make([]FieldChange, 0, len(schema))
	for i := range schema {
		spec := &schema[i]

		var (
			oldVal, newVal any
			oldOK, newOK   bool
		)
		if current != nil {
			oldVal, oldOK = spec.value(current)
		}
		if head != nil {
			newVal, newOK = spec.value(head)
		}
		if !oldOK && !newOK {
			continue
		}
		changes = append(changes, CompareField(spec.name, oldVal, oldOK, newVal, newOK))
	}

	full = collect(changes)

	kept := make([]FieldChange, 0, len(changes))
	for _, fc := range changes {
		if !IsMaintenance(fc.Field) {
			kept = append(kept, fc)
		}
	}
	meaningful = collect(kept)
	return full, meaningful
}

// collect derives the flag and summary for a change list.
func collect(changes []FieldChange) ProjectDiff {
	d := ProjectDiff{Changes: changes}
	for _, fc := range changes {
		switch fc.Type {
		case ChangeAdded:
			d.Summary.Added++
		case ChangeModified:
			d.Summary.Modified++
		case ChangeRemoved:
			d.Summary.Removed++
		}
	}
	d.HasChanges = d.Summary.Total() > 0
	return d
}
