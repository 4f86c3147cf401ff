package diff

// DetailedFieldChange is a FieldChange enriched with its classification,
// ready for grouped display.
type DetailedFieldChange struct {
	FieldChange
	Category Category `json:"category"`
	Impact   Impact   `json:"impact"`
	Display  string   `json:"displayName"`
}

// DetailSummary counts a project's classified changes per category bucket.
type DetailSummary struct {
	Content     int `json:"content"`
	Metadata    int `json:"metadata"`
	Maintenance int `json:"maintenance"`
	Total       int `json:"total"`
}

// ProjectChangeDetail is the per-project aggregate shown in the update
// preview: every non-unchanged field change bucketed by category, counts per
// bucket, and the meaningful-diff gate flag. Maintenance-only diffs report
// HasChanges false while their bucket stays populated, so the UI can say
// "no changes required" and still offer an expandable maintenance section.
type ProjectChangeDetail struct {
	ProjectName string                `json:"projectName"`
	ProjectPath string                `json:"projectPath"`
	Content     []DetailedFieldChange `json:"content"`
	Metadata    []DetailedFieldChange `json:"metadata"`
	Maintenance []DetailedFieldChange `json:"maintenance"`
	Summary     DetailSummary         `json:"summary"`
	HasChanges  bool                  `json:"hasChanges"`
}

// BuildProjectChangeDetail classifies every real change in the full diff
// into its category bucket. The gate flag comes from the meaningful diff,
// never from bucket occupancy.
func BuildProjectChangeDetail(name, path string, full, meaningful ProjectDiff) ProjectChangeDetail {
	detail := ProjectChangeDetail{
		ProjectName: name,
		ProjectPath: path,
		Content:     []DetailedFieldChange{},
		Metadata:    []DetailedFieldChange{},
		Maintenance: []DetailedFieldChange{},
		HasChanges:  meaningful.HasChanges,
	}

	for _, fc := range full.Changes {
		if fc.Type == ChangeUnchanged {
			continue
		}
		cls := Classify(fc.Field)
		dfc := DetailedFieldChange{
			FieldChange: fc,
			Category:    cls.Category,
			Impact:      cls.Impact,
			Display:     cls.Display,
		}
		switch cls.Category {
		case CategoryContent:
			detail.Content = append(detail.Content, dfc)
			detail.Summary.Content++
		case CategoryMaintenance:
			detail.Maintenance = append(detail.Maintenance, dfc)
			detail.Summary.Maintenance++
		default:
			detail.Metadata = append(detail.Metadata, dfc)
			detail.Summary.Metadata++
		}
		detail.Summary.Total++
	}
	return detail
}
