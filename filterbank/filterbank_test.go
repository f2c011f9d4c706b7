package filterbank

import (
	"testing"

	"go.viam.com/test"
)

// Other firmware addresses the table purely by position, so the well-known
// entries must stay exactly where the constants say they are.
func TestTablePositions(t *testing.T) {
	notFitted := FilterBands[NotFittedFilterID]
	test.That(t, notFitted.Band, test.ShouldEqual, BandEmpty)
	test.That(t, notFitted.Uplink, test.ShouldResemble, PassBand{})
	test.That(t, notFitted.Downlink, test.ShouldResemble, PassBand{})

	wideband := FilterBands[WidebandFilterID]
	test.That(t, wideband.Band, test.ShouldEqual, BandWide)
	test.That(t, wideband.Uplink, test.ShouldResemble, PassBand{100, 63000})

	bottom850 := FilterBands[Bottom850ULFilterID]
	test.That(t, bottom850.Band, test.ShouldEqual, BandGSM850)
	test.That(t, bottom850.Uplink, test.ShouldResemble, PassBand{8240, 8319})
	test.That(t, bottom850.Directions, test.ShouldEqual, DirMaskUplink)

	// block starts line up with the first entry of each hardware tranche
	test.That(t, FilterBands[FilterBlock1Start].Band, test.ShouldEqual, BandCDMA450)
	test.That(t, FilterBands[FilterBlock2Start].Band, test.ShouldEqual, BandLTE20)
	test.That(t, FilterBands[FilterBlock3Start].Band, test.ShouldEqual, BandLTE7)
	test.That(t, FilterBands[FilterBlock4Start].Band, test.ShouldEqual, BandLTE28)
	test.That(t, FilterBands[FilterBlock5Start].Band, test.ShouldEqual, BandGSM850)
	test.That(t, FilterBands[FilterBlock6Start].Band, test.ShouldEqual, BandLTE12)
	test.That(t, FilterBands[FilterBlock7Start].Band, test.ShouldEqual, BandLTE7)
	test.That(t, FilterBands[FilterBlock8Start].Extra.SwapForRev(), test.ShouldBeTrue)
	test.That(t, FilterBands[FilterBlock9Start].Band, test.ShouldEqual, BandLTE40)
	test.That(t, FilterBands[FilterBlock10Start].Band, test.ShouldEqual, BandLTE40)

	test.That(t, Len(), test.ShouldEqual, 0x44)
}

func TestTableInvariants(t *testing.T) {
	for _, f := range FilterBands {
		for _, branch := range []PassBand{f.Uplink, f.Downlink} {
			// a branch either exists with sane edges or is fully zero
			if branch.exists() {
				test.That(t, branch.Low, test.ShouldBeLessThanOrEqualTo, branch.High)
			} else {
				test.That(t, branch, test.ShouldResemble, PassBand{})
			}
			// zero-edge branches never contain any channel
			if !branch.exists() {
				test.That(t, branch.Contains(0, 0), test.ShouldBeFalse)
				test.That(t, branch.Contains(1, 1), test.ShouldBeFalse)
			}
		}

		// part counts are consistent
		test.That(t, f.PartIndex, test.ShouldBeGreaterThan, 0)
		test.That(t, f.PartIndex, test.ShouldBeLessThanOrEqualTo, f.PartsPerBand)

		// the 3GPP band number stays within the supported range
		test.That(t, int(f.LTEBand), test.ShouldBeLessThanOrEqualTo, MaxLTEBand)

		// every entry's band number maps back to its own band, so a caller
		// can round-trip the table through the 3GPP mapper
		if f.LTEBand > 0 {
			mapped := FromLTEBand(int(f.LTEBand))
			test.That(t, mapped, test.ShouldEqual, f.Band)
		}
	}
}

func TestDirectionMask(t *testing.T) {
	test.That(t, DirMaskUplink.Has(DirectionUplink), test.ShouldBeTrue)
	test.That(t, DirMaskUplink.Has(DirectionDownlink), test.ShouldBeFalse)
	test.That(t, DirMaskDownlink.Has(DirectionDownlink), test.ShouldBeTrue)
	test.That(t, DirMaskBoth.Has(DirectionUplink), test.ShouldBeTrue)
	test.That(t, DirMaskBoth.Has(DirectionDownlink), test.ShouldBeTrue)
}

func TestExtraDataFlags(t *testing.T) {
	test.That(t, ExtraData(0).ForRevInverted(), test.ShouldBeFalse)
	test.That(t, ExtraData(0).SwapForRev(), test.ShouldBeFalse)
	test.That(t, ExtraForRevInverted.ForRevInverted(), test.ShouldBeTrue)
	test.That(t, ExtraForRevInverted.SwapForRev(), test.ShouldBeFalse)
	test.That(t, ExtraSwapForRev.SwapForRev(), test.ShouldBeTrue)
	test.That(t, (ExtraForRevInverted | ExtraSwapForRev).ForRevInverted(), test.ShouldBeTrue)
}
