package buckets

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBucketContract(t *testing.T) {
	Convey("Given the bucket enumeration", t, func() {
		Convey("Then the vector should have 85 positions", func() {
			So(NumBuckets, ShouldEqual, 85)
		})

		Convey("And every bucket should carry a distinct wire name", func() {
			names := Names()
			So(len(names), ShouldEqual, int(NumBuckets))

			seen := make(map[string]bool, len(names))
			for _, name := range names {
				So(name, ShouldNotBeEmpty)
				So(seen[name], ShouldBeFalse)
				seen[name] = true
			}
		})

		Convey("And key positions should be stable", func() {
			So(FlushRoyal.String(), ShouldEqual, "flush_royal")
			So(int(FlushRoyal), ShouldEqual, 0)
			So(TopPairTopKicker.String(), ShouldEqual, "tp_tk")
			So(OverCard.String(), ShouldEqual, "over_card")
			So(int(OverCard), ShouldEqual, 32)
			So(BackdoorFlushDraw.String(), ShouldEqual, "bdfd")
			So(StraightDrawBlockerNut4.String(), ShouldEqual, "straight_draw_blocker_nut4")
			So(int(StraightDrawBlockerNut4), ShouldEqual, 84)
		})

		Convey("And Lookup should invert String for every bucket", func() {
			for b := Bucket(0); b < NumBuckets; b++ {
				got, ok := Lookup(b.String())
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, b)
			}
		})

		Convey("And Lookup should reject unknown names", func() {
			_, ok := Lookup("royal_sampler")
			So(ok, ShouldBeFalse)
		})

		Convey("And out-of-range buckets should stringify as unknown", func() {
			So(Bucket(-1).String(), ShouldEqual, "unknown")
			So(NumBuckets.String(), ShouldEqual, "unknown")
		})
	})
}

func TestVector(t *testing.T) {
	Convey("Given a classification vector", t, func() {
		var v Vector
		v.set(Flush, true)
		v.set(NutFlush, true)
		v.set(TopPair, false)

		Convey("Then Has should reflect only set buckets", func() {
			So(v.Has(Flush), ShouldBeTrue)
			So(v.Has(NutFlush), ShouldBeTrue)
			So(v.Has(TopPair), ShouldBeFalse)
			So(v.Has(NoDraw), ShouldBeFalse)
		})

		Convey("And Ints should mirror the vector positionally", func() {
			ints := v.Ints()
			So(len(ints), ShouldEqual, int(NumBuckets))
			So(ints[int(Flush)], ShouldEqual, 1)
			So(ints[int(TopPair)], ShouldEqual, 0)
		})
	})
}
