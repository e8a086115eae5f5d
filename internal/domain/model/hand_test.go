package model_test

import (
	"testing"
	"time"

	model "github.com/omahatools/bucketd/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestHand(t *testing.T) {
	convey.Convey("Given a Hand struct", t, func() {
		convey.Convey("When creating a new hand", func() {
			rowID := "row-123"
			hole := "As2c7h9d"
			board := "9c5d3h"
			ts := time.Now()

			hand := model.Hand{
				RowID: rowID,
				Hole:  hole,
				Board: board,
				TS:    ts,
			}

			convey.Convey("Then it should have the correct values", func() {
				convey.So(hand.RowID, convey.ShouldEqual, rowID)
				convey.So(hand.Hole, convey.ShouldEqual, hole)
				convey.So(hand.Board, convey.ShouldEqual, board)
				convey.So(hand.TS, convey.ShouldEqual, ts)
			})
		})

		convey.Convey("When creating a hand with zero values", func() {
			hand := model.Hand{}

			convey.Convey("Then it should have default values", func() {
				convey.So(hand.RowID, convey.ShouldEqual, "")
				convey.So(hand.Hole, convey.ShouldEqual, "")
				convey.So(hand.Board, convey.ShouldEqual, "")
				convey.So(hand.TS, convey.ShouldEqual, time.Time{})
			})
		})

		convey.Convey("When creating a five-card hole hand", func() {
			hand := model.Hand{
				RowID: "row-plo5",
				Hole:  "As2c7h9dTc",
				Board: "9c5d3h2s",
				TS:    time.Now(),
			}

			convey.Convey("Then the raw strings are stored untouched", func() {
				convey.So(hand.Hole, convey.ShouldHaveLength, 10)
				convey.So(hand.Board, convey.ShouldHaveLength, 8)
			})
		})
	})
}
