package reputation

import (
	"github.com/okian/mentorank/internal/domain/model"
)

// Badge names. Badges are non-exclusive; all applicable ones are attached.
const (
	BadgeStarMentor        model.Badge = "star_mentor"
	BadgeExperiencedMentor model.Badge = "experienced_mentor"
	BadgeCommunityLeader   model.Badge = "community_leader"
	BadgeTrustedMentor     model.Badge = "trusted_mentor"
	BadgeCompleteProfile   model.Badge = "complete_profile"
	BadgeWithPhoto         model.Badge = "with_photo"
)

// Badge thresholds.
const (
	starMentorMinRating     = 4.8
	starMentorMinReviews    = 30
	experiencedMinReviews   = 50
	trustedMinReviews       = 5
	trustedRecentCount      = 3
	trustedRecentMinAverage = 4.5
	completeProfileBioLen   = 150
)

// AssignBadges derives the badge set from the derived rating/level, the
// chronological review history (oldest first) and the profile attributes.
func AssignBadges(rating float64, totalReviews, level int, reviews []model.Review, profile model.ProfileSnapshot) []model.Badge {
	badges := make([]model.Badge, 0, 6)

	if rating >= starMentorMinRating && totalReviews >= starMentorMinReviews {
		badges = append(badges, BadgeStarMentor)
	}
	if totalReviews >= experiencedMinReviews {
		badges = append(badges, BadgeExperiencedMentor)
	}
	if level == LevelTop {
		badges = append(badges, BadgeCommunityLeader)
	}
	if len(reviews) >= trustedMinReviews && recentAverage(reviews, trustedRecentCount) >= trustedRecentMinAverage {
		badges = append(badges, BadgeTrustedMentor)
	}
	if len(profile.Bio) > completeProfileBioLen {
		badges = append(badges, BadgeCompleteProfile)
	}
	if profile.AvatarURL != "" {
		badges = append(badges, BadgeWithPhoto)
	}

	return badges
}

// recentAverage is the mean of the per-review averages of the last n
// reviews in chronological order.
func recentAverage(reviews []model.Review, n int) float64 {
	if len(reviews) == 0 {
		return 0
	}
	if n > len(reviews) {
		n = len(reviews)
	}
	var sum float64
	for _, r := range reviews[len(reviews)-n:] {
		sum += reviewAverage(r)
	}
	return sum / float64(n)
}
