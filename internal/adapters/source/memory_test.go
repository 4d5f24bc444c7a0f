package source_test

import (
	"context"
	"errors"
	"testing"
	"time"

	source "github.com/okian/mentorank/internal/adapters/source"
	"github.com/okian/mentorank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryReviews(t *testing.T) {
	Convey("Given an in-memory review source", t, func() {
		reviews := source.NewMemoryReviews()
		ctx := context.Background()

		Convey("When a mentor has no reviews", func() {
			got, err := reviews.ReviewsForMentor(ctx, "mentor-1")

			Convey("Then the list is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When a review is inserted", func() {
			stored, err := reviews.Upsert(ctx, model.Review{
				MentorID: "mentor-1", ReviewerID: "user-1",
				Friendliness: 5, Knowledge: 4, Communication: 6,
				Comment: "solid",
			})

			Convey("Then it gets an id and a creation timestamp", func() {
				So(err, ShouldBeNil)
				So(stored.ReviewID, ShouldNotBeEmpty)
				So(stored.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And resubmission updates in place", func() {
				updated, err := reviews.Upsert(ctx, model.Review{
					MentorID: "mentor-1", ReviewerID: "user-1",
					Friendliness: 2, Knowledge: 2, Communication: 2,
					Comment: "changed my mind",
				})
				So(err, ShouldBeNil)
				So(updated.ReviewID, ShouldEqual, stored.ReviewID)
				So(updated.CreatedAt, ShouldEqual, stored.CreatedAt)
				So(updated.Friendliness, ShouldEqual, 2)

				got, err := reviews.ReviewsForMentor(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Comment, ShouldEqual, "changed my mind")
			})
		})

		Convey("When several reviewers submit", func() {
			for _, reviewer := range []string{"user-1", "user-2", "user-3"} {
				_, err := reviews.Upsert(ctx, model.Review{
					MentorID: "mentor-1", ReviewerID: reviewer,
					Friendliness: 4, Knowledge: 4, Communication: 4,
				})
				So(err, ShouldBeNil)
			}

			Convey("Then creation order is preserved", func() {
				got, err := reviews.ReviewsForMentor(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				So(got[0].ReviewerID, ShouldEqual, "user-1")
				So(got[2].ReviewerID, ShouldEqual, "user-3")
			})
		})

		Convey("When backdated reviews arrive out of order", func() {
			now := time.Now().UTC()
			for _, r := range []struct {
				reviewer string
				age      time.Duration
			}{
				{"user-recent", time.Hour},
				{"user-old", 72 * time.Hour},
				{"user-middle", 24 * time.Hour},
			} {
				_, err := reviews.Upsert(ctx, model.Review{
					MentorID: "mentor-1", ReviewerID: r.reviewer,
					Friendliness: 4, Knowledge: 4, Communication: 4,
					CreatedAt: now.Add(-r.age),
				})
				So(err, ShouldBeNil)
			}

			Convey("Then reads return them oldest first", func() {
				got, err := reviews.ReviewsForMentor(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				So(got[0].ReviewerID, ShouldEqual, "user-old")
				So(got[1].ReviewerID, ShouldEqual, "user-middle")
				So(got[2].ReviewerID, ShouldEqual, "user-recent")
			})
		})
	})
}

func TestMemorySignals(t *testing.T) {
	Convey("Given an in-memory signal source", t, func() {
		signals := source.NewMemorySignals()
		ctx := context.Background()

		Convey("When fetching signals for an unknown mentor", func() {
			_, err := signals.SessionCount(ctx, "ghost")

			Convey("Then the fetch fails rather than defaulting", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, source.ErrUnknownMentor), ShouldBeTrue)
			})

			_, err = signals.ProfileSnapshot(ctx, "ghost")
			So(errors.Is(err, source.ErrUnknownMentor), ShouldBeTrue)
		})

		Convey("When a mentor is registered", func() {
			signals.EnsureMentor(ctx, "mentor-1")

			Convey("Then signals default to zero", func() {
				sessions, err := signals.SessionCount(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(sessions, ShouldEqual, 0)

				complete, err := signals.ProfileComplete(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(complete, ShouldBeFalse)
			})

			Convey("And seeded values are returned", func() {
				signals.SetSessions(ctx, "mentor-1", 12)
				signals.SetMessages(ctx, "mentor-1", 30)
				signals.SetProfileComplete(ctx, "mentor-1", true)

				sessions, _ := signals.SessionCount(ctx, "mentor-1")
				messages, _ := signals.MessageCount(ctx, "mentor-1")
				complete, _ := signals.ProfileComplete(ctx, "mentor-1")
				So(sessions, ShouldEqual, 12)
				So(messages, ShouldEqual, 30)
				So(complete, ShouldBeTrue)
			})

			Convey("And registering again keeps the original snapshot", func() {
				before, err := signals.ProfileSnapshot(ctx, "mentor-1")
				So(err, ShouldBeNil)
				signals.EnsureMentor(ctx, "mentor-1")
				after, err := signals.ProfileSnapshot(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(after.CreatedAt, ShouldEqual, before.CreatedAt)
			})
		})

		Convey("When a full profile snapshot is set", func() {
			created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			signals.SetProfile(ctx, model.ProfileSnapshot{
				MentorID: "mentor-2", CreatedAt: created,
				Bio: "bio", AvatarURL: "a.png",
			})

			snapshot, err := signals.ProfileSnapshot(ctx, "mentor-2")
			So(err, ShouldBeNil)
			So(snapshot.CreatedAt, ShouldEqual, created)
			So(snapshot.AvatarURL, ShouldEqual, "a.png")
		})
	})
}
