package diff

// Classification is the policy verdict for one schema field.
type Classification struct {
	Category Category `json:"category"`
	Impact   Impact   `json:"impact"`
	Display  string   `json:"displayName"`
}

// Classify returns the category, impact and display name for a field. The
// verdict comes from the schema table; unknown fields (schema drift, files
// written by a newer build) classify as metadata/low under their raw name
// rather than erroring.
func Classify(field string) Classification {
	if spec, ok := schemaByName[field]; ok {
		return Classification{Category: spec.category, Impact: spec.impact, Display: spec.display}
	}
	return Classification{Category: CategoryMetadata, Impact: ImpactLow, Display: field}
}

// IsMaintenance reports whether a field's changes are incidental bookkeeping
// (folder size, last-modified stamp) rather than something the user did.
func IsMaintenance(field string) bool {
	return Classify(field).Category == CategoryMaintenance
}
