package service_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/okian/mentorank/internal/adapters/repository"
	service "github.com/okian/mentorank/internal/app"
	"github.com/okian/mentorank/internal/domain/model"
	"github.com/okian/mentorank/internal/domain/reputation"
	"github.com/okian/mentorank/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func startedService(t *testing.T, opts ...service.Option) (*service.Service, context.Context) {
	t.Helper()

	svc := service.New(opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	t.Cleanup(svc.Stop)

	if err := svc.Start(ctx); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	return svc, ctx
}

func review(mentorID, reviewerID string, score int, createdAt time.Time) model.Review {
	return model.Review{
		MentorID:      mentorID,
		ReviewerID:    reviewerID,
		Friendliness:  score,
		Knowledge:     score,
		Communication: score,
		CreatedAt:     createdAt,
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxTopLimit(), ShouldEqual, 100)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(50_000),
			service.WithDedupeSize(25_000),
			service.WithMaxTopLimit(10),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxTopLimit(), ShouldEqual, 10)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a service with invalid scoring parameters", t, func() {
		p := reputation.DefaultParams()
		p.PriorWeight = -1
		svc := service.New(service.WithParams(p))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then startup fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_SubmitAndRecompute(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, ctx := startedService(t, service.WithWorkerCount(2))
		now := time.Now().UTC()

		Convey("When reviews are submitted and the mentor is recomputed", func() {
			for i, reviewer := range []string{"r-1", "r-2", "r-3"} {
				_, err := svc.SubmitReview(ctx, review("mentor-1", reviewer, 5, now.Add(-time.Duration(i)*time.Hour)))
				So(err, ShouldBeNil)
			}

			rep, err := svc.Recompute(ctx, "mentor-1")

			Convey("Then a versioned profile is published", func() {
				So(err, ShouldBeNil)
				So(rep.MentorID, ShouldEqual, "mentor-1")
				So(rep.TotalReviews, ShouldEqual, 3)
				So(rep.Version, ShouldEqual, 1)
				So(rep.Rating, ShouldBeGreaterThan, 0)

				got, err := svc.Reputation(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(got.Rating, ShouldEqual, rep.Rating)
			})

			Convey("And a second recompute bumps the version", func() {
				So(err, ShouldBeNil)
				rep2, err := svc.Recompute(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(rep2.Version, ShouldEqual, rep.Version+1)
			})
		})

		Convey("When a mentor with no reviews is recomputed", func() {
			svc.Seed().EnsureMentor(ctx, "mentor-empty")
			rep, err := svc.Recompute(ctx, "mentor-empty")

			Convey("Then the defined zero-state is published", func() {
				So(err, ShouldBeNil)
				So(rep.Rating, ShouldEqual, 0)
				So(rep.Level, ShouldEqual, 1)
				So(rep.TotalReviews, ShouldEqual, 0)
				So(rep.Badges, ShouldBeEmpty)
			})
		})

		Convey("When recompute targets an unregistered mentor", func() {
			_, err := svc.Recompute(ctx, "mentor-unknown")

			Convey("Then the signal failure aborts the run and nothing is published", func() {
				So(err, ShouldNotBeNil)
				_, err := svc.Reputation(ctx, "mentor-unknown")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_ConcurrentRecomputes(t *testing.T) {
	Convey("Given recomputes racing with a fresh submission", t, func() {
		svc, ctx := startedService(t, service.WithWorkerCount(2))
		now := time.Now().UTC()

		Convey("Then every trial publishes a profile covering both reviews", func() {
			const trials = 200
			for i := 0; i < trials; i++ {
				mentorID := "mentor-race-" + strconv.Itoa(i)

				_, err := svc.SubmitReview(ctx, review(mentorID, "r-1", 5, now.Add(-time.Hour)))
				So(err, ShouldBeNil)

				var wg sync.WaitGroup
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = svc.Recompute(ctx, mentorID)
				}()

				_, err = svc.SubmitReview(ctx, review(mentorID, "r-2", 4, now))
				So(err, ShouldBeNil)
				_, err = svc.Recompute(ctx, mentorID)
				So(err, ShouldBeNil)
				wg.Wait()

				// The racing recompute may publish first or last; either way
				// the final write must have scored the two-review snapshot.
				rep, err := svc.Reputation(ctx, mentorID)
				So(err, ShouldBeNil)
				So(rep.TotalReviews, ShouldEqual, 2)
			}
		})
	})
}

func TestService_ReviewUpsertSemantics(t *testing.T) {
	Convey("Given a mentor with a review from one reviewer", t, func() {
		svc, ctx := startedService(t)
		now := time.Now().UTC()

		first, err := svc.SubmitReview(ctx, review("mentor-1", "r-1", 2, now.Add(-time.Hour)))
		So(err, ShouldBeNil)

		Convey("When the same reviewer submits again", func() {
			second, err := svc.SubmitReview(ctx, review("mentor-1", "r-1", 6, now))
			So(err, ShouldBeNil)

			Convey("Then the review is updated in place", func() {
				So(second.ReviewID, ShouldEqual, first.ReviewID)

				_, err := svc.Recompute(ctx, "mentor-1")
				So(err, ShouldBeNil)
				rep, err := svc.Reputation(ctx, "mentor-1")
				So(err, ShouldBeNil)
				So(rep.TotalReviews, ShouldEqual, 1)
			})
		})
	})
}

func TestService_AsyncPipeline(t *testing.T) {
	Convey("Given a started service with workers", t, func() {
		svc, ctx := startedService(t, service.WithWorkerCount(4))
		now := time.Now().UTC()

		_, err := svc.SubmitReview(ctx, review("mentor-async", "r-1", 4, now.Add(-2*time.Hour)))
		So(err, ShouldBeNil)

		Convey("When a recompute event is enqueued", func() {
			So(svc.Enqueue(ctx, "mentor-async"), ShouldBeTrue)

			Convey("Then a worker eventually publishes the profile", func() {
				deadline := time.Now().Add(2 * time.Second)
				var rep model.Reputation
				var repErr error
				for time.Now().Before(deadline) {
					rep, repErr = svc.Reputation(ctx, "mentor-async")
					if repErr == nil {
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(repErr, ShouldBeNil)
				So(rep.TotalReviews, ShouldEqual, 1)
			})
		})
	})
}

func TestService_Dedupe(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, ctx := startedService(t)

		Convey("When a submission id is recorded twice", func() {
			So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)

			Convey("Then the second attempt reports it as seen", func() {
				So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
				So(svc.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording allows a retry", func() {
				svc.Unrecord(ctx, "sub-1")
				So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			})
		})
	})
}

func TestService_Top(t *testing.T) {
	Convey("Given several recomputed mentors", t, func() {
		svc, ctx := startedService(t, service.WithMaxTopLimit(2))
		now := time.Now().UTC()

		for _, m := range []struct {
			id    string
			score int
		}{
			{"mentor-a", 6},
			{"mentor-b", 4},
			{"mentor-c", 2},
		} {
			for i, reviewer := range []string{"r-1", "r-2", "r-3"} {
				_, err := svc.SubmitReview(ctx, review(m.id, reviewer, m.score, now.Add(-time.Duration(i+1)*time.Hour)))
				So(err, ShouldBeNil)
			}
			_, err := svc.Recompute(ctx, m.id)
			So(err, ShouldBeNil)
		}

		Convey("When the top list is requested beyond the cap", func() {
			entries, err := svc.Top(ctx, 50)

			Convey("Then the result is clamped and ordered by rating", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].MentorID, ShouldEqual, "mentor-a")
				So(entries[1].MentorID, ShouldEqual, "mentor-b")
				So(entries[0].Rank, ShouldEqual, 1)
			})
		})
	})
}

func TestService_SuspiciousReviews(t *testing.T) {
	Convey("Given a mentor with one uniform-extreme review", t, func() {
		svc, ctx := startedService(t)
		now := time.Now().UTC()

		_, err := svc.SubmitReview(ctx, review("mentor-sus", "r-1", 6, now.Add(-48*time.Hour)))
		So(err, ShouldBeNil)
		_, err = svc.SubmitReview(ctx, model.Review{
			MentorID:      "mentor-sus",
			ReviewerID:    "r-2",
			Friendliness:  3,
			Knowledge:     4,
			Communication: 5,
			CreatedAt:     now.Add(-24 * time.Hour),
		})
		So(err, ShouldBeNil)

		Convey("When the detector runs", func() {
			flagged, err := svc.SuspiciousReviews(ctx, "mentor-sus")

			Convey("Then only the uniform review is flagged", func() {
				So(err, ShouldBeNil)
				So(flagged, ShouldHaveLength, 1)
				So(flagged[0].ReviewerID, ShouldEqual, "r-1")
				So(flagged[0].Reasons, ShouldContain, string(reputation.ReasonUniformExtreme))
			})

			Convey("And flagging does not change the published rating", func() {
				So(err, ShouldBeNil)
				_, err := svc.Recompute(ctx, "mentor-sus")
				So(err, ShouldBeNil)
				rep, err := svc.Reputation(ctx, "mentor-sus")
				So(err, ShouldBeNil)
				So(rep.TotalReviews, ShouldEqual, 2)
			})
		})
	})
}
