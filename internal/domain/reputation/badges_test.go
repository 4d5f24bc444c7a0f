package reputation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
	reputation "github.com/okian/mentorank/internal/domain/reputation"
	. "github.com/smartystreets/goconvey/convey"
)

func hasBadge(badges []model.Badge, b model.Badge) bool {
	for _, have := range badges {
		if have == b {
			return true
		}
	}
	return false
}

func TestAssignBadges(t *testing.T) {
	Convey("Given the badge rules", t, func() {
		now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
		profile := model.ProfileSnapshot{MentorID: "mentor-1", CreatedAt: now.AddDate(-2, 0, 0)}

		Convey("When a mentor has nothing notable", func() {
			badges := reputation.AssignBadges(2.0, 1, 1, uniformReviews(1, 3, now), profile)
			So(badges, ShouldBeEmpty)
		})

		Convey("When rating and review count clear the star threshold", func() {
			badges := reputation.AssignBadges(4.8, 30, 3, uniformReviews(30, 5, now), profile)
			So(hasBadge(badges, reputation.BadgeStarMentor), ShouldBeTrue)

			Convey("And just below either threshold the badge is withheld", func() {
				So(hasBadge(reputation.AssignBadges(4.79, 30, 3, nil, profile), reputation.BadgeStarMentor), ShouldBeFalse)
				So(hasBadge(reputation.AssignBadges(4.8, 29, 3, nil, profile), reputation.BadgeStarMentor), ShouldBeFalse)
			})
		})

		Convey("When the review count reaches fifty", func() {
			badges := reputation.AssignBadges(3.0, 50, 2, uniformReviews(50, 3, now), profile)
			So(hasBadge(badges, reputation.BadgeExperiencedMentor), ShouldBeTrue)
		})

		Convey("When the mentor sits at the top level", func() {
			badges := reputation.AssignBadges(4.6, 26, 4, uniformReviews(26, 5, now), profile)
			So(hasBadge(badges, reputation.BadgeCommunityLeader), ShouldBeTrue)
		})

		Convey("When the three latest reviews are strong", func() {
			history := uniformReviews(2, 2, now.AddDate(0, -6, 0))
			history = append(history, uniformReviews(3, 5, now)...)
			badges := reputation.AssignBadges(3.0, 5, 2, history, profile)

			Convey("Then the trusted badge applies regardless of overall rating", func() {
				So(hasBadge(badges, reputation.BadgeTrustedMentor), ShouldBeTrue)
			})

			Convey("And with fewer than five reviews it does not", func() {
				short := uniformReviews(3, 6, now)
				So(hasBadge(reputation.AssignBadges(3.0, 3, 2, short, profile), reputation.BadgeTrustedMentor), ShouldBeFalse)
			})

			Convey("And weak recent reviews withhold it", func() {
				fading := uniformReviews(3, 6, now.AddDate(0, -6, 0))
				fading = append(fading, uniformReviews(3, 2, now)...)
				So(hasBadge(reputation.AssignBadges(3.0, 6, 2, fading, profile), reputation.BadgeTrustedMentor), ShouldBeFalse)
			})
		})

		Convey("When the profile carries a long bio and an avatar", func() {
			rich := profile
			rich.Bio = strings.Repeat("mentoring ", 20)
			rich.AvatarURL = "https://cdn.example/avatar.png"
			badges := reputation.AssignBadges(2.0, 1, 1, uniformReviews(1, 3, now), rich)

			So(hasBadge(badges, reputation.BadgeCompleteProfile), ShouldBeTrue)
			So(hasBadge(badges, reputation.BadgeWithPhoto), ShouldBeTrue)

			Convey("And a 150-character bio is not enough", func() {
				borderline := profile
				borderline.Bio = strings.Repeat("x", 150)
				So(hasBadge(reputation.AssignBadges(2.0, 1, 1, nil, borderline), reputation.BadgeCompleteProfile), ShouldBeFalse)
			})
		})

		Convey("When called twice with the same inputs", func() {
			history := uniformReviews(30, 5, now)
			first := reputation.AssignBadges(4.9, 30, 4, history, profile)
			second := reputation.AssignBadges(4.9, 30, 4, history, profile)

			Convey("Then the badge set is deterministic", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}
