package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testActivities() map[string]model.Activity {
	return map[string]model.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
	}
}

func TestRegistryList(t *testing.T) {
	Convey("Given a seeded registry", t, func() {
		ctx := context.Background()
		store := repository.NewRegistry(ctx, repository.WithActivities(testActivities()))

		Convey("When listing activities", func() {
			out := store.List(ctx)

			Convey("Then it should return the full registry", func() {
				So(out, ShouldContainKey, "Chess Club")
				So(out, ShouldContainKey, "Programming Class")
				So(len(out), ShouldEqual, 2)
			})

			Convey("And every activity should carry its fields", func() {
				for _, a := range out {
					So(a.Description, ShouldNotBeBlank)
					So(a.Schedule, ShouldNotBeBlank)
					So(a.MaxParticipants, ShouldBeGreaterThan, 0)
					So(a.Participants, ShouldNotBeNil)
				}
			})

			Convey("And mutating the result should not leak into the registry", func() {
				out["Chess Club"].Participants[0] = "tampered@mergington.edu"
				fresh := store.List(ctx)
				So(fresh["Chess Club"].Participants[0], ShouldEqual, "michael@mergington.edu")
			})
		})

		Convey("When constructed without options", func() {
			seeded := repository.NewRegistry(ctx)

			Convey("Then it should hold the default seed set", func() {
				So(seeded.Count(ctx), ShouldEqual, len(repository.SeedActivities()))
				So(seeded.List(ctx), ShouldContainKey, "Chess Club")
			})
		})
	})
}

func TestRegistrySignup(t *testing.T) {
	Convey("Given a seeded registry", t, func() {
		ctx := context.Background()
		store := repository.NewRegistry(ctx, repository.WithActivities(testActivities()))

		Convey("When signing up a new student", func() {
			err := store.Signup(ctx, "Chess Club", "newstudent@mergington.edu")

			Convey("Then it should succeed and appear at the end of the roster", func() {
				So(err, ShouldBeNil)
				a, getErr := store.Get(ctx, "Chess Club")
				So(getErr, ShouldBeNil)
				So(a.Participants, ShouldResemble, []string{
					"michael@mergington.edu",
					"daniel@mergington.edu",
					"newstudent@mergington.edu",
				})
			})
		})

		Convey("When signing up for an unknown activity", func() {
			err := store.Signup(ctx, "Nonexistent Club", "student@mergington.edu")

			Convey("Then it should return ErrActivityNotFound", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrActivityNotFound), ShouldBeTrue)
			})
		})

		Convey("When signing up a student twice", func() {
			So(store.Signup(ctx, "Chess Club", "repeat@mergington.edu"), ShouldBeNil)
			err := store.Signup(ctx, "Chess Club", "repeat@mergington.edu")

			Convey("Then the second attempt should return ErrAlreadySignedUp", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrAlreadySignedUp), ShouldBeTrue)
			})
		})

		Convey("When signing up the same student for two activities", func() {
			So(store.Signup(ctx, "Chess Club", "busy@mergington.edu"), ShouldBeNil)
			So(store.Signup(ctx, "Programming Class", "busy@mergington.edu"), ShouldBeNil)

			Convey("Then both rosters should contain the student", func() {
				out := store.List(ctx)
				So(out["Chess Club"].HasParticipant("busy@mergington.edu"), ShouldBeTrue)
				So(out["Programming Class"].HasParticipant("busy@mergington.edu"), ShouldBeTrue)
			})
		})
	})
}

func TestRegistryUnregister(t *testing.T) {
	Convey("Given a seeded registry", t, func() {
		ctx := context.Background()
		store := repository.NewRegistry(ctx, repository.WithActivities(testActivities()))

		Convey("When unregistering a registered student", func() {
			err := store.Unregister(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then it should succeed and remove only that student", func() {
				So(err, ShouldBeNil)
				a, getErr := store.Get(ctx, "Chess Club")
				So(getErr, ShouldBeNil)
				So(a.Participants, ShouldResemble, []string{"daniel@mergington.edu"})
			})

			Convey("And unregistering again should return ErrNotSignedUp", func() {
				So(err, ShouldBeNil)
				again := store.Unregister(ctx, "Chess Club", "michael@mergington.edu")
				So(errors.Is(again, repository.ErrNotSignedUp), ShouldBeTrue)
			})
		})

		Convey("When unregistering from an unknown activity", func() {
			err := store.Unregister(ctx, "Nonexistent Club", "student@mergington.edu")

			Convey("Then it should return ErrActivityNotFound", func() {
				So(errors.Is(err, repository.ErrActivityNotFound), ShouldBeTrue)
			})
		})

		Convey("When unregistering a student who never signed up", func() {
			err := store.Unregister(ctx, "Chess Club", "noone@mergington.edu")

			Convey("Then it should return ErrNotSignedUp", func() {
				So(errors.Is(err, repository.ErrNotSignedUp), ShouldBeTrue)
			})
		})

		Convey("When removing from the middle of a roster", func() {
			So(store.Signup(ctx, "Chess Club", "third@mergington.edu"), ShouldBeNil)
			So(store.Unregister(ctx, "Chess Club", "daniel@mergington.edu"), ShouldBeNil)

			Convey("Then the remaining order should be preserved", func() {
				a, err := store.Get(ctx, "Chess Club")
				So(err, ShouldBeNil)
				So(a.Participants, ShouldResemble, []string{
					"michael@mergington.edu",
					"third@mergington.edu",
				})
			})
		})
	})
}

func TestRegistryCounts(t *testing.T) {
	Convey("Given a seeded registry", t, func() {
		ctx := context.Background()
		store := repository.NewRegistry(ctx, repository.WithActivities(testActivities()))

		Convey("When counting", func() {
			So(store.Count(ctx), ShouldEqual, 2)
			So(store.ParticipantCount(ctx), ShouldEqual, 4)
		})

		Convey("When the rosters mutate", func() {
			So(store.Signup(ctx, "Chess Club", "extra@mergington.edu"), ShouldBeNil)
			So(store.Unregister(ctx, "Programming Class", "emma@mergington.edu"), ShouldBeNil)

			Convey("Then participant count should follow", func() {
				So(store.Count(ctx), ShouldEqual, 2)
				So(store.ParticipantCount(ctx), ShouldEqual, 4)
			})
		})
	})
}

func TestRegistryConcurrentSignups(t *testing.T) {
	Convey("Given a seeded registry under concurrent mutation", t, func() {
		ctx := context.Background()
		store := repository.NewRegistry(ctx, repository.WithActivities(testActivities()))

		const students = 50
		var wg sync.WaitGroup
		wg.Add(students)
		for i := 0; i < students; i++ {
			go func(i int) {
				defer wg.Done()
				_ = store.Signup(ctx, "Gym Class", fmt.Sprintf("s%d@mergington.edu", i))
				_ = store.Signup(ctx, "Chess Club", fmt.Sprintf("s%d@mergington.edu", i))
			}(i)
		}
		wg.Wait()

		Convey("Then every signup against the known activity should land exactly once", func() {
			a, err := store.Get(ctx, "Chess Club")
			So(err, ShouldBeNil)
			So(len(a.Participants), ShouldEqual, 2+students)
		})
	})
}
