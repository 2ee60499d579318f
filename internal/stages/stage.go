package stages

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage identifies one named step of the workflow.
type Stage string

const (
	StageVendorData Stage = "vendor_data"
	StageLogistics  Stage = "logistics"
	StageContent    Stage = "content"
	StageReporting  Stage = "reporting"
)

var allStages = []Stage{StageVendorData, StageLogistics, StageContent, StageReporting}

var stageSet = func() map[Stage]struct{} {
	set := make(map[Stage]struct{}, len(allStages))
	for _, stage := range allStages {
		set[stage] = struct{}{}
	}
	return set
}()

var titleCaser = cases.Title(language.English)

// All returns the ordered list of workflow stages.
func All() []Stage {
	cp := make([]Stage, len(allStages))
	copy(cp, allStages)
	return cp
}

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	normalized := Stage(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stageSet[normalized]
	return normalized, ok
}

// DisplayName returns the dashboard label for a stage ("vendor_data" becomes
// "Vendor Data").
func (s Stage) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(string(s), "_", " "))
}
