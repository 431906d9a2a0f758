package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	repository "github.com/okian/festa/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMapStoreUpsert(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMapStore()

		Convey("When upserting a verdict", func() {
			err := store.Upsert(ctx, "jazz-night", "high", 83.3, 0.91)

			Convey("Then the event becomes retrievable", func() {
				So(err, ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 1)
				entry, err := store.Rank(ctx, "jazz-night")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 1)
				So(entry.Label, ShouldEqual, "high")
				So(entry.Percent, ShouldAlmostEqual, 83.3, 1e-9)
			})
		})

		Convey("When re-scoring the same event", func() {
			So(store.Upsert(ctx, "jazz-night", "medium", 55, 0.6), ShouldBeNil)
			So(store.Upsert(ctx, "jazz-night", "high", 80, 0.85), ShouldBeNil)

			Convey("Then the verdict is replaced, not duplicated", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				entry, err := store.Rank(ctx, "jazz-night")
				So(err, ShouldBeNil)
				So(entry.Label, ShouldEqual, "high")
				So(entry.Percent, ShouldEqual, 80.0)
			})
		})

		Convey("When upserting invalid entries", func() {
			Convey("Then a blank name is rejected", func() {
				err := store.Upsert(ctx, "  ", "high", 80, 0.8)
				So(errors.Is(err, repository.ErrInvalidEntry), ShouldBeTrue)
			})

			Convey("And an out-of-range percent is rejected", func() {
				err := store.Upsert(ctx, "jazz-night", "high", 120, 0.8)
				So(errors.Is(err, repository.ErrInvalidEntry), ShouldBeTrue)
			})
		})
	})
}

func TestMapStoreRank(t *testing.T) {
	Convey("Given a store with several verdicts", t, func() {
		ctx := context.Background()
		store := repository.NewMapStore()
		So(store.Upsert(ctx, "a", "high", 90, 0.9), ShouldBeNil)
		So(store.Upsert(ctx, "b", "medium", 60, 0.6), ShouldBeNil)
		So(store.Upsert(ctx, "c", "low", 20, 0.2), ShouldBeNil)

		Convey("When asking for each rank", func() {
			Convey("Then ranks follow percent order", func() {
				for i, name := range []string{"a", "b", "c"} {
					entry, err := store.Rank(ctx, name)
					So(err, ShouldBeNil)
					So(entry.Rank, ShouldEqual, i+1)
				}
			})
		})

		Convey("When asking for an unknown event", func() {
			_, err := store.Rank(ctx, "ghost")

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When two events share a percent", func() {
			So(store.Upsert(ctx, "b2", "medium", 60, 0.6), ShouldBeNil)

			Convey("Then name order breaks the tie deterministically", func() {
				entryB, err := store.Rank(ctx, "b")
				So(err, ShouldBeNil)
				entryB2, err := store.Rank(ctx, "b2")
				So(err, ShouldBeNil)
				So(entryB.Rank, ShouldEqual, 2)
				So(entryB2.Rank, ShouldEqual, 3)
			})
		})
	})
}

func TestMapStoreTopN(t *testing.T) {
	Convey("Given a store with ten verdicts", t, func() {
		ctx := context.Background()
		store := repository.NewMapStore(repository.WithShardCount(4))
		for i := 0; i < 10; i++ {
			name := fmt.Sprintf("event-%d", i)
			So(store.Upsert(ctx, name, "medium", float64(i*10), float64(i)/10), ShouldBeNil)
		}

		Convey("When listing the top three", func() {
			entries, err := store.TopN(ctx, 3)

			Convey("Then the highest percents come first with sequential ranks", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Name, ShouldEqual, "event-9")
				So(entries[1].Name, ShouldEqual, "event-8")
				So(entries[2].Name, ShouldEqual, "event-7")
				for i, entry := range entries {
					So(entry.Rank, ShouldEqual, i+1)
				}
			})
		})

		Convey("When asking for more than the store holds", func() {
			entries, err := store.TopN(ctx, 100)

			Convey("Then everything is returned", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 10)
			})
		})

		Convey("When asking with a non-positive limit", func() {
			_, err := store.TopN(ctx, 0)

			Convey("Then ErrInvalidLimit is returned", func() {
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})
	})
}

func TestMapStoreConcurrency(t *testing.T) {
	Convey("Given concurrent upserts across shards", t, func() {
		ctx := context.Background()
		store := repository.NewMapStore()

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				name := fmt.Sprintf("event-%d", i)
				_ = store.Upsert(ctx, name, "medium", float64(i%100), 0.5)
			}(i)
		}
		wg.Wait()

		Convey("Then every verdict lands exactly once", func() {
			So(store.Count(ctx), ShouldEqual, 100)
			entries, err := store.TopN(ctx, 100)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 100)
		})
	})
}
