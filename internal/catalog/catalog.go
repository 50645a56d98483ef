package catalog

// Category is a dimension of choice in the stack builder.
type Category string

const (
	Architecture   Category = "architecture"
	LLMProvider    Category = "llmProvider"
	VectorDB       Category = "vectorDb"
	Database       Category = "database"
	ORM            Category = "orm"
	Auth           Category = "auth"
	Search         Category = "search"
	Memory         Category = "memory"
	Observability  Category = "observability"
	Addons         Category = "addons"
	PackageManager Category = "packageManager"
	Git            Category = "git"
	Install        Category = "install"
)

// None is the sentinel option id meaning "nothing selected".
const None = "none"

// Badge classifies what an option needs to run.
type Badge string

const (
	BadgeFree   Badge = "free"
	BadgeAPIKey Badge = "api-key"
	BadgeLocal  Badge = "local"
	BadgeCloud  Badge = "cloud"
)

// Option is a selectable value within a category.
type Option struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Badge       Badge  `json:"badge,omitempty" yaml:"badge,omitempty"`
	IsDefault   bool   `json:"isDefault" yaml:"is_default"`
}

// categoryOrder is the display order used by the builder and the CLI.
var categoryOrder = []Category{
	Architecture,
	LLMProvider,
	VectorDB,
	Database,
	ORM,
	Auth,
	Search,
	Memory,
	Observability,
	Addons,
	PackageManager,
	Git,
	Install,
}

// postgresCompatible lists databases that can host the pgvector extension.
var postgresCompatible = map[string]bool{
	"postgresql": true,
	"neon":       true,
	"supabase":   true,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// IsCategory reports whether c is part of the closed category set.
func IsCategory(c Category) bool {
	_, ok := options[c]
	return ok
}

// Options returns the catalog entries for a category.
func Options(c Category) []Option {
	src := options[c]
	out := make([]Option, len(src))
	copy(out, src)
	return out
}

// IDs returns the option ids of a category in catalog order.
func IDs(c Category) []string {
	src := options[c]
	ids := make([]string, 0, len(src))
	for _, o := range src {
		ids = append(ids, o.ID)
	}
	return ids
}

// Lookup finds an option by id.
func Lookup(c Category, id string) (Option, bool) {
	for _, o := range options[c] {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// IsKnown reports whether id is a valid value for c.
func IsKnown(c Category, id string) bool {
	_, ok := Lookup(c, id)
	return ok
}

// DefaultID returns the id flagged as default for a scalar category.
func DefaultID(c Category) string {
	for _, o := range options[c] {
		if o.IsDefault {
			return o.ID
		}
	}
	return ""
}

// IsMulti reports whether a category holds a set of ids.
func IsMulti(c Category) bool {
	return c == Addons
}

// IsBoolean reports whether a category is a "true"/"false" toggle.
func IsBoolean(c Category) bool {
	return c == Git || c == Install
}

// IsPostgresCompatible reports whether a database id speaks the Postgres protocol.
func IsPostgresCompatible(database string) bool {
	return postgresCompatible[database]
}
