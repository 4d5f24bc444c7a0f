package reputation_test

import (
	"testing"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
	reputation "github.com/okian/mentorank/internal/domain/reputation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSuspicionReasons(t *testing.T) {
	Convey("Given the advisory suspicion heuristics", t, func() {
		now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

		Convey("When all sub-scores sit at the maximum", func() {
			review := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 6, Knowledge: 6, Communication: 6,
				CreatedAt: now.AddDate(0, 0, -2),
			}
			reasons := reputation.SuspicionReasons(review, []model.Review{review}, now)

			Convey("Then it is flagged regardless of age", func() {
				So(reasons, ShouldContain, reputation.ReasonUniformExtreme)
				So(reputation.Suspect(review, []model.Review{review}, now), ShouldBeTrue)
			})
		})

		Convey("When all sub-scores sit at the minimum", func() {
			review := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 1, Knowledge: 1, Communication: 1,
				CreatedAt: now.AddDate(0, 0, -2),
			}
			So(reputation.SuspicionReasons(review, []model.Review{review}, now), ShouldContain, reputation.ReasonUniformExtreme)
		})

		Convey("When a varied review is only ten minutes old", func() {
			review := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 3, Knowledge: 4, Communication: 5,
				CreatedAt: now.Add(-10 * time.Minute),
			}
			reasons := reputation.SuspicionReasons(review, []model.Review{review}, now)

			Convey("Then recency is the only reason", func() {
				So(reasons, ShouldResemble, []reputation.SuspicionReason{reputation.ReasonTooRecent})
			})
		})

		Convey("When the same reviewer holds two reviews for the mentor on one day", func() {
			first := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 3, Knowledge: 4, Communication: 5,
				CreatedAt: now.Add(-5 * time.Hour),
			}
			second := model.Review{
				ReviewID: "r2", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 2, Knowledge: 3, Communication: 4,
				CreatedAt: now.Add(-3 * time.Hour),
			}
			history := []model.Review{first, second}

			Convey("Then both are flagged as duplicate and same-day", func() {
				for _, review := range history {
					reasons := reputation.SuspicionReasons(review, history, now)
					So(reasons, ShouldContain, reputation.ReasonDuplicateReviewer)
					So(reasons, ShouldContain, reputation.ReasonSameDayRepeat)
				}
			})
		})

		Convey("When duplicate reviews land on different calendar days", func() {
			first := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 3, Knowledge: 4, Communication: 5,
				CreatedAt: now.AddDate(0, 0, -10),
			}
			second := model.Review{
				ReviewID: "r2", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 2, Knowledge: 3, Communication: 4,
				CreatedAt: now.Add(-2 * time.Hour),
			}
			history := []model.Review{first, second}
			reasons := reputation.SuspicionReasons(second, history, now)

			Convey("Then duplicate fires but same-day does not", func() {
				So(reasons, ShouldContain, reputation.ReasonDuplicateReviewer)
				So(reasons, ShouldNotContain, reputation.ReasonSameDayRepeat)
			})
		})

		Convey("When a varied, aged, unique review is evaluated", func() {
			clean := model.Review{
				ReviewID: "r1", MentorID: "m1", ReviewerID: "u1",
				Friendliness: 4, Knowledge: 5, Communication: 6,
				CreatedAt: now.AddDate(0, 0, -3),
			}
			other := model.Review{
				ReviewID: "r2", MentorID: "m1", ReviewerID: "u2",
				Friendliness: 5, Knowledge: 4, Communication: 3,
				CreatedAt: now.AddDate(0, 0, -1),
			}

			Convey("Then it is not flagged", func() {
				So(reputation.Suspect(clean, []model.Review{clean, other}, now), ShouldBeFalse)
			})
		})
	})
}
