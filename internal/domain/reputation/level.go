package reputation

// Experience levels, ordered. Classification walks the tier table from the
// top and the highest matching tier wins.
const (
	LevelNew         = 1
	LevelTrusted     = 2
	LevelExperienced = 3
	LevelTop         = 4
)

type tier struct {
	level      int
	minReviews int
	minRating  float64
	title      string
}

// tiers is ordered highest first; LevelNew is the fall-through default.
var tiers = []tier{
	{level: LevelTop, minReviews: 25, minRating: 4.5, title: "Top Mentor"},
	{level: LevelExperienced, minReviews: 10, minRating: 4.0, title: "Experienced Mentor"},
	{level: LevelTrusted, minReviews: 3, minRating: 3.5, title: "Trusted Mentor"},
}

const newMentorTitle = "New Mentor"

// ClassifyLevel maps (rating, review count) to a discrete experience level
// and its presentational title. Pure and deterministic.
func ClassifyLevel(rating float64, totalReviews int) (int, string) {
	for _, t := range tiers {
		if totalReviews >= t.minReviews && rating >= t.minRating {
			return t.level, t.title
		}
	}
	return LevelNew, newMentorTitle
}

// LevelTitle returns the presentational title for a level.
func LevelTitle(level int) string {
	for _, t := range tiers {
		if t.level == level {
			return t.title
		}
	}
	return newMentorTitle
}
