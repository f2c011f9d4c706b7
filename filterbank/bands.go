// Package filterbank holds the immutable RF filter/duplexer band table and the
// site selection logic for the front-end filter switch.
package filterbank

import "math"

// Band identifies the logical RF band a filter entry belongs to. The numeric
// values are shared with the calibration tooling and must not be renumbered.
type Band int

const (
	BandCDMA450 Band = 0
	BandIDEN    Band = 2
	BandGSM850  Band = 4
	BandEGSM900 Band = 6
	BandDCS1800 Band = 8
	BandPCS1900 Band = 10
	BandUMTS1   Band = 12
	BandEmpty   Band = 14

	BandLTE7  Band = 16
	BandLTE20 Band = 18

	BandLTE28 Band = 20
	BandLTE12 Band = 22
	BandLTE13 Band = 24
	BandLTE17 Band = 26

	BandLTE40 Band = 28
	BandLTE38 Band = 30
	BandLTE41 Band = 32

	BandLTE25 Band = 34
	BandLTE26 Band = 36
	BandLTE71 Band = 38
	BandN77   Band = 40

	// BandWide is the "no real filtering, pass everything" entry.
	BandWide  Band = 1000
	BandError Band = -1
	BandNone  Band = math.MaxInt32
)

// MaxLTEBand is the highest 3GPP band number a table entry refers to.
const MaxLTEBand = 77

// FromLTEBand maps a 3GPP band number to the internal band identifier.
// Unknown band numbers deliberately fall back to wideband rather than an
// error so that an unrecognized channel request still gets some filtering.
func FromLTEBand(lteBand int) Band {
	switch lteBand {
	case 1:
		return BandUMTS1
	case 2:
		return BandPCS1900
	case 3:
		return BandDCS1800
	case 5:
		return BandGSM850
	case 7:
		return BandLTE7
	case 8:
		return BandEGSM900
	case 9:
		return BandDCS1800
	case 12:
		return BandLTE12
	case 13:
		return BandLTE13
	case 17:
		return BandLTE17
	case 20:
		return BandLTE20
	case 25:
		return BandLTE25
	case 26:
		return BandLTE26
	case 27:
		return BandIDEN
	case 28:
		return BandLTE28
	case 31:
		return BandCDMA450
	case 38:
		return BandLTE38
	case 39:
		return BandLTE25
	case 40:
		return BandLTE40
	case 41:
		return BandLTE41
	case 42, 43, 52, 77, 78:
		return BandN77
	case 71:
		return BandLTE71
	default:
		return BandWide
	}
}

// String returns the band name used by the test rig and calibration reports.
func (b Band) String() string {
	switch b {
	case BandCDMA450:
		return "CDMA450"
	case BandIDEN:
		return "IDEN"
	case BandGSM850:
		return "GSM850"
	case BandEGSM900:
		return "EGSM900"
	case BandDCS1800:
		return "DCS1800"
	case BandPCS1900:
		return "PCS1900"
	case BandUMTS1:
		return "UMTS_1"
	case BandEmpty:
		return "OPEN"
	case BandLTE7:
		return "LTE_7"
	case BandLTE20:
		return "LTE_20"
	case BandLTE28:
		return "LTE_28"
	case BandLTE12:
		return "LTE_12"
	case BandLTE13:
		return "LTE_13"
	case BandLTE17:
		return "LTE_17"
	case BandLTE40:
		return "LTE_40"
	case BandLTE38:
		return "TD_2600"
	case BandLTE41:
		return "LTE_41"
	case BandLTE25:
		return "1900+"
	case BandLTE26:
		return "850+"
	case BandLTE71:
		return "LTE_71"
	case BandN77:
		return "LTE_77"
	case BandWide:
		return "WIDEBAND"
	default:
		return "UNKNOWN"
	}
}
