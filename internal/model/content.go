package model

// Category is a fixed topic tag used to route content to scheduled slots
type Category string

const (
	CategoryStartupVisa       Category = "startup_visa"
	CategoryStudentVisa       Category = "student_visa"
	CategoryWorkPermit        Category = "work_permit"
	CategoryImmigrationUpdate Category = "immigration_update"
	CategoryScholarship       Category = "scholarship"
	CategoryGeneral           Category = "general"

	// CategoryExternalLink is produced by the link extractor only,
	// never by the classifier
	CategoryExternalLink Category = "external_link"
)

// ClassifierCategories is the closed set the classifier may return
var ClassifierCategories = []Category{
	CategoryStartupVisa,
	CategoryStudentVisa,
	CategoryWorkPermit,
	CategoryImmigrationUpdate,
	CategoryScholarship,
	CategoryGeneral,
}

// ValidClassifierCategory reports whether s is in the closed classifier set
func ValidClassifierCategory(s string) bool {
	for _, c := range ClassifierCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ContentItem is one classified unit of postable content.
// JSON field names match the persisted store artifact.
type ContentItem struct {
	Source     string   `json:"source"`     // filename or URL of origin
	Category   Category `json:"category"`   // topic tag
	Title      string   `json:"title"`      // dedup key for posted tracking
	Content    string   `json:"content"`    // bounded summary text
	Confidence float64  `json:"confidence"` // classifier confidence in [0,1]
}

// RawBlock is a bounded unit of raw text produced by segmentation,
// the unit of classification
type RawBlock struct {
	Title     string
	Body      string
	WordCount int
}
