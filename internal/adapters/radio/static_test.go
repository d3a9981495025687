package radio_test

import (
	"context"
	"testing"

	"github.com/okian/atompull/internal/adapters/radio"
	"github.com/okian/atompull/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStaticInfo(t *testing.T) {
	ctx := context.Background()

	Convey("Given a provider with no options", t, func() {
		info := radio.NewStaticInfo()

		Convey("When queried before becoming ready", func() {
			Convey("Then every query reports not ready", func() {
				_, err := info.SimSlotState(ctx)
				So(err, ShouldWrap, radio.ErrNotReady)

				_, err = info.RadioAccessFamily(ctx)
				So(err, ShouldWrap, radio.ErrNotReady)

				v, err := info.CarrierIDTableVersion(ctx)
				So(err, ShouldWrap, radio.ErrNotReady)
				So(v, ShouldEqual, radio.UnknownCarrierIDTableVersion)
			})
		})

		Convey("When flipped ready without seeded values", func() {
			info.SetReady()

			Convey("Then queries succeed with zero values", func() {
				state, err := info.SimSlotState(ctx)
				So(err, ShouldBeNil)
				So(state, ShouldResemble, model.SimSlotState{})

				raf, err := info.RadioAccessFamily(ctx)
				So(err, ShouldBeNil)
				So(raf, ShouldEqual, 0)
			})

			Convey("Then the carrier table version stays unknown", func() {
				v, err := info.CarrierIDTableVersion(ctx)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, radio.UnknownCarrierIDTableVersion)
			})
		})
	})

	Convey("Given a fully seeded provider", t, func() {
		info := radio.NewStaticInfo(
			radio.WithSimSlotState(model.SimSlotState{
				ActiveSlotCount: 2,
				ActiveSimCount:  2,
				ActiveEsimCount: 1,
			}),
			radio.WithRadioAccessFamily(0x4c),
			radio.WithCarrierIDTableVersion(7),
		)

		Convey("When queried", func() {
			Convey("Then each snapshot matches the seed", func() {
				state, err := info.SimSlotState(ctx)
				So(err, ShouldBeNil)
				So(state.ActiveSlotCount, ShouldEqual, 2)
				So(state.ActiveEsimCount, ShouldEqual, 1)

				raf, err := info.RadioAccessFamily(ctx)
				So(err, ShouldBeNil)
				So(raf, ShouldEqual, 0x4c)

				v, err := info.CarrierIDTableVersion(ctx)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 7)
			})
		})
	})
}
