package domain

// Category identifies one of the data domains the collector scrapes. The set
// is closed; it maps 1:1 to snapshot file names and never grows at runtime.
type Category string

const (
	CategoryEvents        Category = "events"
	CategoryRaids         Category = "raids"
	CategoryResearch      Category = "research"
	CategoryEggs          Category = "eggs"
	CategoryRocketLineups Category = "rocket-lineups"
	CategoryPromoCodes    Category = "promo-codes"
)

// snapshotFiles is the fixed category-to-file table.
var snapshotFiles = map[Category]string{
	CategoryEvents:        "events.json",
	CategoryRaids:         "raids.json",
	CategoryResearch:      "research.json",
	CategoryEggs:          "eggs.json",
	CategoryRocketLineups: "rocket-lineups.json",
	CategoryPromoCodes:    "promo-codes.json",
}

// Categories returns all categories in stable order.
func Categories() []Category {
	return []Category{
		CategoryEvents,
		CategoryRaids,
		CategoryResearch,
		CategoryEggs,
		CategoryRocketLineups,
		CategoryPromoCodes,
	}
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := snapshotFiles[c]
	return ok
}

// Filename returns the snapshot file name for the category, or "" when the
// category is not part of the closed set.
func (c Category) Filename() string {
	return snapshotFiles[c]
}

// CategoryForFile maps a snapshot file name back to its category. Used by
// the store watcher to translate file events.
func CategoryForFile(name string) (Category, bool) {
	for cat, file := range snapshotFiles {
		if file == name {
			return cat, true
		}
	}
	return "", false
}

// ParseCategory converts an externally supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", E(CodeInvalidArgument, "category.parse", "unknown category "+s, ErrInvalidCategory)
	}
	return c, nil
}
