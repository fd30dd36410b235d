// Package selection picks the next item to deliver for a target
// category, reconciling the loose category labels that different
// classification passes produce.
package selection

import (
	"strings"

	"github.com/nikavisa/visaflow/internal/model"
)

// rule maps a lowercase substring to a canonical category. Rules are
// consulted in order; first match wins.
type rule struct {
	substring string
	category  model.Category
}

// normalizationRules reconcile label drift across store versions.
// Specific categories come before generic ones so "startup visa news"
// lands on startup_visa, not immigration_update.
var normalizationRules = []rule{
	{"startup_visa", model.CategoryStartupVisa},
	{"startup", model.CategoryStartupVisa},
	{"استارتاپ", model.CategoryStartupVisa},
	{"student_visa", model.CategoryStudentVisa},
	{"student", model.CategoryStudentVisa},
	{"study", model.CategoryStudentVisa},
	{"تحصیل", model.CategoryStudentVisa},
	{"work_permit", model.CategoryWorkPermit},
	{"work", model.CategoryWorkPermit},
	{"اجازه کار", model.CategoryWorkPermit},
	{"scholarship", model.CategoryScholarship},
	{"بورسیه", model.CategoryScholarship},
	{"immigration_update", model.CategoryImmigrationUpdate},
	{"update", model.CategoryImmigrationUpdate},
	{"news", model.CategoryImmigrationUpdate},
	{"external", model.CategoryExternalLink},
	{"link", model.CategoryExternalLink},
}

// Normalize maps an item's loose labeling onto the canonical category
// set. The category field is checked together with title and content
// because older store records carried free-form labels.
func Normalize(item model.ContentItem) model.Category {
	haystack := strings.ToLower(string(item.Category) + " " + item.Title + " " + item.Content)
	for _, r := range normalizationRules {
		if strings.Contains(haystack, r.substring) {
			return r.category
		}
	}
	return model.CategoryGeneral
}

// Select returns the first stored item whose normalized category
// matches target and whose title has not been posted yet. Returns nil
// when no candidate is eligible. Stored order is the only tie-break,
// so repeated runs against unchanged inputs pick the same item.
func Select(items []model.ContentItem, posted []string, target model.Category) *model.ContentItem {
	postedSet := make(map[string]bool, len(posted))
	for _, title := range posted {
		postedSet[title] = true
	}

	for i := range items {
		if Normalize(items[i]) != target {
			continue
		}
		if postedSet[items[i].Title] {
			continue
		}
		return &items[i]
	}
	return nil
}
