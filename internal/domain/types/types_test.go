package types_test

import (
	"testing"

	types "github.com/omahatools/bucketd/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating a new entry", func() {
			entry := types.Entry{
				Rank:   1,
				Bucket: "top_pair",
				Count:  42,
				Share:  0.35,
			}

			Convey("Then it should have the correct values", func() {
				So(entry.Rank, ShouldEqual, 1)
				So(entry.Bucket, ShouldEqual, "top_pair")
				So(entry.Count, ShouldEqual, 42)
				So(entry.Share, ShouldEqual, 0.35)
			})
		})

		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.Bucket, ShouldEqual, "")
				So(entry.Count, ShouldEqual, 0)
				So(entry.Share, ShouldEqual, 0.0)
			})
		})
	})
}

func TestEntryOrdering(t *testing.T) {
	Convey("Given a ranked list of entries", t, func() {
		entries := []types.Entry{
			{Rank: 1, Bucket: "no_draw", Count: 900, Share: 0.9},
			{Rank: 2, Bucket: "pair", Count: 450, Share: 0.45},
			{Rank: 3, Bucket: "flush_draw", Count: 120, Share: 0.12},
		}

		Convey("Then ranks should be sequential", func() {
			for i, entry := range entries {
				So(entry.Rank, ShouldEqual, i+1)
			}
		})

		Convey("And counts should be in descending order", func() {
			for i := 0; i < len(entries)-1; i++ {
				So(entries[i].Count, ShouldBeGreaterThanOrEqualTo, entries[i+1].Count)
			}
		})

		Convey("And shares should stay within [0, 1]", func() {
			for _, entry := range entries {
				So(entry.Share, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(entry.Share, ShouldBeLessThanOrEqualTo, 1.0)
			}
		})
	})
}
