package media

// Category bundles the bucket, size limits, and resize/quality policy for
// one kind of content image. Each admin form picks its category; the
// pipeline is otherwise identical across all of them.
type Category struct {
	Name      string
	Bucket    string
	KeyPrefix string

	// MaxInputBytes caps the raw upload size before any decode work.
	MaxInputBytes int64

	// MaxWidth/MaxHeight bound the output dimensions. Zero means no cap;
	// images are only ever scaled down, never up.
	MaxWidth  int
	MaxHeight int

	// SoftMaxInputDim warns (but does not reject) when either natural
	// dimension exceeds it. Zero disables the check.
	SoftMaxInputDim int

	// OutputBudgetBytes enables adaptive encoding: quality steps down from
	// QualityCeiling until the output fits the budget or QualityFloor is
	// reached. Zero means a single pass at QualityDefault.
	OutputBudgetBytes int
	QualityCeiling    int
	QualityDefault    int
	QualityFloor      int
	QualityStep       int
}

const (
	profileMaxInput  = 5 << 20  // 5MB: teacher/uniform/org photos
	longformMaxInput = 10 << 20 // 10MB: article/facility/program images
)

var (
	Article = Category{
		Name: "article", Bucket: "article-images", KeyPrefix: "article_",
		MaxInputBytes: longformMaxInput, QualityDefault: 80,
	}
	Teacher = Category{
		Name: "teacher", Bucket: "teacher-images", KeyPrefix: "teacher_",
		MaxInputBytes: profileMaxInput, QualityDefault: 80,
	}
	Facility = Category{
		Name: "facility", Bucket: "facility-images", KeyPrefix: "facility_",
		MaxInputBytes: longformMaxInput, QualityDefault: 80,
	}
	Uniform = Category{
		Name: "uniform", Bucket: "uniform-images", KeyPrefix: "uniform_",
		MaxInputBytes: profileMaxInput, QualityDefault: 80,
	}
	OrgMember = Category{
		Name: "org", Bucket: "org-images", KeyPrefix: "org_",
		MaxInputBytes: profileMaxInput, QualityDefault: 80,
	}
	Program = Category{
		Name: "program", Bucket: "program-images", KeyPrefix: "program_",
		MaxInputBytes: longformMaxInput, QualityDefault: 80,
	}
	// Promotion assets land on high-traffic pages, so their output is
	// additionally capped to 1600x1600 and squeezed under a 400KB budget.
	Promotion = Category{
		Name: "promotion", Bucket: "promotions", KeyPrefix: "promo_",
		MaxInputBytes: longformMaxInput,
		MaxWidth:      1600, MaxHeight: 1600,
		SoftMaxInputDim:   3000,
		OutputBudgetBytes: 400 << 10,
		QualityCeiling:    85, QualityDefault: 80, QualityFloor: 50, QualityStep: 10,
	}
)

// Categories lists every configured category in display order.
var Categories = []Category{Article, Teacher, Facility, Uniform, OrgMember, Program, Promotion}

// CategoryByName resolves a category from its name. The second return value
// reports whether the name is known.
func CategoryByName(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
