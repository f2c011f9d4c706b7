package filterbank

// Direction identifies the electrical branch of a (possibly duplexed) filter
// part. The values match the firmware convention: uplink is the reverse path,
// downlink the forward path.
type Direction int

const (
	DirectionUnknown  Direction = -1
	DirectionUplink   Direction = 0
	DirectionDownlink Direction = 1
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionUplink:
		return "uplink"
	case DirectionDownlink:
		return "downlink"
	default:
		return "unknown"
	}
}

// DirectionMask is a bitset of the directions a filter part supports.
type DirectionMask uint16

const (
	DirMaskUplink   DirectionMask = 1
	DirMaskDownlink DirectionMask = 2
	DirMaskBoth     DirectionMask = DirMaskUplink | DirMaskDownlink
)

// Has reports whether the mask includes the given direction.
func (m DirectionMask) Has(d Direction) bool {
	if d == DirectionUplink {
		return m&DirMaskUplink != 0
	}
	return m&DirMaskDownlink != 0
}

// ExtraData carries per-part electrical quirks as two independent flags.
type ExtraData uint8

const (
	// ExtraForRevInverted means the forward/reverse control line polarity is
	// inverted for this part: the line must be driven high for forward.
	ExtraForRevInverted ExtraData = 1
	// ExtraSwapForRev means the part's forward and reverse paths are wired
	// swapped relative to the board convention.
	ExtraSwapForRev ExtraData = 2
)

// ForRevInverted reports whether the control line polarity is inverted.
func (e ExtraData) ForRevInverted() bool { return e&ExtraForRevInverted != 0 }

// SwapForRev reports whether the forward and reverse paths are swapped.
func (e ExtraData) SwapForRev() bool { return e&ExtraSwapForRev != 0 }

// CalLookup indexes the 872 radio board characteristic-data table. It is
// carried through to the calibration subsystem and never interpreted here.
type CalLookup int

const (
	CalNoLookup CalLookup = iota - 1
	CalLTE7
	CalDCS1800
	CalPCS1900
	CalUMTS1
	CalGSM850
	CalEGSM900
	CalLTE20
	CalWideband
	CalLTE12
	CalLTE13
	CalLTE28A
	CalLTE28B
	CalLTE40

	calLookupEntries
)

// PassBand is an inclusive frequency range in tenths of a MHz. A zero Low and
// High means the branch does not exist on the part.
type PassBand struct {
	Low  uint16
	High uint16
}

func (p PassBand) exists() bool { return p.Low != 0 && p.High != 0 }

// Contains reports whether the quantized channel edges both lie within the
// passband. Nonexistent branches never contain anything.
func (p PassBand) Contains(low, high uint16) bool {
	return p.exists() && p.Low <= low && high <= p.High
}

// Centre returns the middle of the passband in tenths of a MHz.
func (p PassBand) Centre() int {
	return (int(p.Low) + int(p.High)) / 2
}

// FilterBand describes one filter/duplexer part that may be fitted to a site.
type FilterBand struct {
	Uplink       PassBand
	Downlink     PassBand
	Directions   DirectionMask
	LadonID      uint16 // cross-reference id for the legacy subsystem
	Band         Band
	LTEBand      int8 // 3GPP band number, -1 when not applicable
	PartIndex    uint8
	PartsPerBand uint8
	Extra        ExtraData
	Cal          CalLookup
}

// Branch returns the passband for the given direction.
func (f *FilterBand) Branch(d Direction) PassBand {
	if d == DirectionUplink {
		return f.Uplink
	}
	return f.Downlink
}

// Well-known table positions. The table is addressed by position everywhere
// else in the firmware, so element order must never change.
const (
	NotFittedFilterID   = 0
	WidebandFilterID    = 1
	Bottom850ULFilterID = 20
)

// Block start offsets within the table, one block per hardware tranche.
const (
	FilterBlock0Start  = 0  // generics: empty and wideband
	FilterBlock1Start  = 2  // classic standard filters
	FilterBlock2Start  = 16 // classic additional LTE filters (7/20)
	FilterBlock3Start  = 21 // covert standard duplexers
	FilterBlock4Start  = 28 // covert additional LTE duplexers, 28A/B
	FilterBlock5Start  = 30 // mk2 standard filters
	FilterBlock6Start  = 44 // covert additional LTE duplexers, 12/13/17
	FilterBlock7Start  = 47 // tactical standard duplexers
	FilterBlock8Start  = 54 // covert LTE13, reversed orientation
	FilterBlock9Start  = 55 // tactical LTE40
	FilterBlock10Start = 56 // covert LTE40 and reversed LTE28A
)

// FilterBands is the immutable filter band table. Each row describes the
// uplink and downlink passbands (tenths of MHz), the directions the part
// supports, the legacy id, the logical band with its 3GPP band number, which
// fractional part of the band the filter covers, the electrical quirk flags,
// and the calibration lookup id.
//
// Columns:
//
//	uplink          downlink        dirs             ladon band          lte part extra cal
var FilterBands = []FilterBand{
	// Block 0 (generic):
	{PassBand{}, PassBand{}, DirMaskBoth, 0, BandEmpty, -1, 1, 1, 0, CalNoLookup},                // 0x00 not fitted
	{PassBand{100, 63000}, PassBand{}, DirMaskUplink, 1, BandWide, 0, 1, 1, 0, CalWideband},      // 0x01 wideband

	// Block 1 (classic standard filters):
	{PassBand{4510, 4590}, PassBand{}, DirMaskUplink, 0, BandCDMA450, 31, 1, 1, 0, CalNoLookup},  // 0x02 450 GSM UL, rev band is 8 MHz, fwd is 7
	{PassBand{}, PassBand{4600, 4670}, DirMaskDownlink, 0, BandCDMA450, 31, 1, 1, 0, CalNoLookup},    // 0x03 450 GSM DL
	{PassBand{8060, 8210}, PassBand{}, DirMaskUplink, 11, BandIDEN, 27, 1, 1, 0, CalNoLookup},    // 0x04 800 SMR (iDEN) UL
	{PassBand{}, PassBand{8510, 8660}, DirMaskDownlink, 10, BandIDEN, 27, 1, 1, 0, CalNoLookup},      // 0x05 800 SMR (iDEN) DL
	{PassBand{8240, 8490}, PassBand{}, DirMaskUplink, 5, BandGSM850, 5, 1, 1, 0, CalNoLookup},    // 0x06 850 GSM UL
	{PassBand{}, PassBand{8690, 8940}, DirMaskDownlink, 4, BandGSM850, 5, 1, 1, 0, CalNoLookup},      // 0x07 850 GSM DL
	{PassBand{8800, 9150}, PassBand{}, DirMaskUplink, 3, BandEGSM900, 8, 1, 1, 0, CalNoLookup},   // 0x08 900 EGSM UL
	{PassBand{}, PassBand{9250, 9600}, DirMaskDownlink, 2, BandEGSM900, 8, 1, 1, 0, CalNoLookup},     // 0x09 900 EGSM DL
	{PassBand{17100, 17850}, PassBand{}, DirMaskUplink, 7, BandDCS1800, 3, 1, 1, 0, CalNoLookup}, // 0x0a 1800+ DCS UL
	{PassBand{}, PassBand{18050, 18800}, DirMaskDownlink, 6, BandDCS1800, 3, 1, 1, 0, CalNoLookup},   // 0x0b 1800+ DCS DL
	{PassBand{18500, 19100}, PassBand{}, DirMaskUplink, 9, BandPCS1900, 2, 1, 1, 0, CalNoLookup}, // 0x0c 1900 PCS UL
	{PassBand{}, PassBand{19300, 19900}, DirMaskDownlink, 8, BandPCS1900, 2, 1, 1, 0, CalNoLookup},   // 0x0d 1900 PCS DL
	{PassBand{19200, 19800}, PassBand{}, DirMaskUplink, 13, BandUMTS1, 1, 1, 1, 0, CalNoLookup},  // 0x0e 2100 UL
	{PassBand{}, PassBand{21100, 21700}, DirMaskDownlink, 12, BandUMTS1, 1, 1, 1, 0, CalNoLookup},    // 0x0f 2100 DL

	// Block 2 (classic additional LTE filters):
	{PassBand{8320, 8620}, PassBand{}, DirMaskUplink, 19, BandLTE20, 20, 1, 1, 0, CalNoLookup},     // 0x10 800-DD UL, uplink sits above downlink for LTE20
	{PassBand{}, PassBand{7910, 8210}, DirMaskDownlink, 18, BandLTE20, 20, 1, 1, 0, CalNoLookup},       // 0x11 800-DD DL
	{PassBand{25000, 25700}, PassBand{}, DirMaskUplink, 17, BandLTE7, 7, 1, 1, 0, CalNoLookup},     // 0x12 2600 UL
	{PassBand{}, PassBand{26200, 26900}, DirMaskDownlink, 16, BandLTE7, 7, 1, 1, 0, CalNoLookup},       // 0x13 2600 DL

	// When the LTE20 uplink filter is present it shadows the bottom of the
	// 850 uplink band, so this narrow filter covers what remains. Must stay
	// at position Bottom850ULFilterID.
	{PassBand{8240, 8319}, PassBand{}, DirMaskUplink, 5, BandGSM850, 5, 1, 1, 0, CalNoLookup}, // 0x14 850 GSM UL bottom

	// Block 3 (covert standard filters in duplexers, fwd/rev paired):
	{PassBand{25000, 25700}, PassBand{26200, 26900}, DirMaskBoth, 0, BandLTE7, 7, 1, 1, 0, CalLTE7},       // 0x15 2600
	{PassBand{17100, 17850}, PassBand{18050, 18800}, DirMaskBoth, 0, BandDCS1800, 3, 1, 1, 0, CalDCS1800}, // 0x16 1800+ DCS
	{PassBand{18500, 19100}, PassBand{19300, 19900}, DirMaskBoth, 0, BandPCS1900, 2, 1, 1, 0, CalPCS1900}, // 0x17 1900 PCS
	{PassBand{19200, 20100}, PassBand{21100, 22000}, DirMaskBoth, 0, BandUMTS1, 1, 1, 1, 0, CalUMTS1},     // 0x18 2100
	{PassBand{8240, 8490}, PassBand{8690, 8940}, DirMaskBoth, 0, BandGSM850, 5, 1, 1, 0, CalGSM850},       // 0x19 850 GSM
	{PassBand{8800, 9150}, PassBand{9250, 9600}, DirMaskBoth, 0, BandEGSM900, 8, 1, 1, 0, CalEGSM900},     // 0x1a 900 EGSM
	{PassBand{8320, 8620}, PassBand{7910, 8210}, DirMaskBoth, 0, BandLTE20, 20, 1, 1, 0, CalLTE20},        // 0x1b 800-DD

	// Block 4 (covert additional LTE duplexers, 1st tranche). Both parts are
	// needed to cover the full band 28 width; each covers two thirds.
	{PassBand{7030, 7330}, PassBand{7580, 7880}, DirMaskBoth, 0, BandLTE28, 28, 1, 2, 0, CalNoLookup}, // 0x1c 700 APT lower 2/3
	{PassBand{7180, 7480}, PassBand{7730, 8030}, DirMaskBoth, 0, BandLTE28, 28, 2, 2, 0, CalLTE28B},   // 0x1d 700 APT upper 2/3

	// Block 5 (mk2 standard filters):
	{PassBand{}, PassBand{8690, 8940}, DirMaskDownlink, 0, BandGSM850, 5, 1, 1, 0, CalNoLookup},      // 0x1e 850 GSM DL
	{PassBand{8240, 8490}, PassBand{}, DirMaskUplink, 0, BandGSM850, 5, 1, 1, 0, CalNoLookup},    // 0x1f 850 GSM UL
	{PassBand{}, PassBand{9250, 9600}, DirMaskDownlink, 0, BandEGSM900, 8, 1, 1, 0, CalNoLookup},     // 0x20 900 EGSM DL
	{PassBand{8800, 9150}, PassBand{}, DirMaskUplink, 0, BandEGSM900, 8, 1, 1, 0, CalNoLookup},   // 0x21 900 EGSM UL
	{PassBand{}, PassBand{18050, 18800}, DirMaskDownlink, 0, BandDCS1800, 3, 1, 1, 0, CalNoLookup},   // 0x22 1800+ DCS DL
	{PassBand{17100, 17850}, PassBand{}, DirMaskUplink, 0, BandDCS1800, 3, 1, 1, 0, CalNoLookup}, // 0x23 1800+ DCS UL
	{PassBand{}, PassBand{19300, 19900}, DirMaskDownlink, 0, BandPCS1900, 2, 1, 1, 0, CalNoLookup},   // 0x24 1900 PCS DL
	{PassBand{18500, 19100}, PassBand{}, DirMaskUplink, 0, BandPCS1900, 2, 1, 1, 0, CalNoLookup}, // 0x25 1900 PCS UL
	{PassBand{}, PassBand{21100, 22000}, DirMaskDownlink, 0, BandUMTS1, 1, 1, 1, 0, CalNoLookup},     // 0x26 2100 DL
	{PassBand{19200, 20100}, PassBand{}, DirMaskUplink, 0, BandUMTS1, 1, 1, 1, 0, CalNoLookup},   // 0x27 2100 UL
	{PassBand{}, PassBand{26200, 26900}, DirMaskDownlink, 0, BandLTE7, 7, 1, 1, 0, CalNoLookup},      // 0x28 2600 DL
	{PassBand{25000, 25700}, PassBand{}, DirMaskUplink, 0, BandLTE7, 7, 1, 1, 0, CalNoLookup},    // 0x29 2600 UL
	{PassBand{}, PassBand{7910, 8210}, DirMaskDownlink, 0, BandLTE20, 20, 1, 1, 0, CalNoLookup},      // 0x2a 800-DD DL
	{PassBand{8320, 8620}, PassBand{}, DirMaskUplink, 0, BandLTE20, 20, 1, 1, 0, CalNoLookup},    // 0x2b 800-DD UL

	// Block 6 (covert additional LTE duplexers, 2nd tranche):
	{PassBand{6980, 7160}, PassBand{7280, 7460}, DirMaskBoth, 0, BandLTE12, 12, 1, 1, 0, CalLTE12},    // 0x2c lower SMH (blocks A-C)
	{PassBand{7770, 7870}, PassBand{7460, 7560}, DirMaskBoth, 0, BandLTE13, 13, 1, 1, 0, CalLTE13},    // 0x2d upper SMH (block C)
	{PassBand{7040, 7160}, PassBand{7340, 7460}, DirMaskBoth, 0, BandLTE17, 17, 1, 1, 0, CalNoLookup}, // 0x2e lower SMH (blocks B-C)

	// Block 7 (tactical standard duplexers, fwd/rev paired):
	{PassBand{25000, 25700}, PassBand{26200, 26900}, DirMaskBoth, 0, BandLTE7, 7, 1, 1, 0, CalNoLookup},       // 0x2f 2600
	// Taisaw-sourced part wired with the control line active high for forward.
	{PassBand{8320, 8620}, PassBand{7910, 8210}, DirMaskBoth, 0, BandLTE20, 20, 1, 1, ExtraForRevInverted, CalNoLookup}, // 0x30 800-DD
	{PassBand{8240, 8490}, PassBand{8690, 8940}, DirMaskBoth, 0, BandGSM850, 5, 1, 1, 0, CalNoLookup},         // 0x31 850 GSM
	{PassBand{8800, 9150}, PassBand{9250, 9600}, DirMaskBoth, 0, BandEGSM900, 8, 1, 1, 0, CalNoLookup},        // 0x32 900 EGSM
	{PassBand{17100, 17850}, PassBand{18050, 18800}, DirMaskBoth, 0, BandDCS1800, 3, 1, 1, 0, CalNoLookup},    // 0x33 1800+ DCS
	{PassBand{18500, 19100}, PassBand{19300, 19900}, DirMaskBoth, 0, BandPCS1900, 2, 1, 1, 0, CalNoLookup},    // 0x34 1900 PCS
	{PassBand{19200, 20100}, PassBand{21100, 22000}, DirMaskBoth, 0, BandUMTS1, 1, 1, 1, 0, CalNoLookup},      // 0x35 2100

	// Block 8 (covert LTE13, forward and reverse swapped versus convention):
	{PassBand{7770, 7870}, PassBand{7460, 7560}, DirMaskBoth, 0, BandLTE13, 13, 1, 1, ExtraSwapForRev, CalNoLookup}, // 0x36 upper SMH

	// Block 9 (tactical additional LTE filters, 2nd tranche). TDD band, only
	// the uplink arm is connected so the right branch is always chosen.
	{PassBand{23000, 24000}, PassBand{}, DirMaskUplink, 0, BandLTE40, 40, 1, 1, 0, CalNoLookup}, // 0x37 band 40

	// Block 10 (covert LTE40 plus reversed LTE28A):
	{PassBand{23000, 24000}, PassBand{}, DirMaskUplink, 0, BandLTE40, 40, 1, 1, 0, CalLTE40},                        // 0x38 band 40
	{PassBand{7030, 7330}, PassBand{7580, 7880}, DirMaskBoth, 0, BandLTE28, 28, 1, 2, ExtraSwapForRev, CalLTE28A},   // 0x39 700 APT lower 2/3, swapped part

	// Block 11 (tactical 3rd tranche duplexers and single TDD filters):
	{PassBand{18500, 19200}, PassBand{19300, 19950}, DirMaskBoth, 0, BandLTE25, 25, 1, 1, 0, CalNoLookup}, // 0x3a extended PCS1900
	{PassBand{8140, 8490}, PassBand{8590, 8940}, DirMaskBoth, 0, BandLTE26, 26, 1, 1, 0, CalNoLookup},     // 0x3b extended GSM850
	{PassBand{25700, 26200}, PassBand{}, DirMaskUplink, 0, BandLTE38, 38, 1, 1, 0, CalNoLookup},       // 0x3c band 38, uplink arm only
	{PassBand{24960, 26900}, PassBand{}, DirMaskUplink, 0, BandLTE41, 41, 1, 1, 0, CalNoLookup},       // 0x3d band 41, uplink arm only
	{PassBand{6630, 6980}, PassBand{6170, 6520}, DirMaskBoth, 0, BandLTE71, 71, 1, 1, 0, CalNoLookup},     // 0x3e band 71
	{PassBand{33000, 42000}, PassBand{}, DirMaskUplink, 0, BandN77, 77, 1, 1, 0, CalNoLookup},         // 0x3f NR band 77, uplink arm only

	// Block 12 (covert replacement for the obsolete 0x1b part; swapped
	// orientation):
	{PassBand{8320, 8620}, PassBand{7910, 8210}, DirMaskBoth, 0, BandLTE20, 20, 1, 1, ExtraSwapForRev, CalLTE20}, // 0x40 800-DD

	// Block 13 (tactical replacement for the obsolete 0x30 part):
	{PassBand{8320, 8620}, PassBand{7910, 8210}, DirMaskBoth, 0, BandLTE20, 20, 1, 1, 0, CalNoLookup}, // 0x41 800-DD

	// Blocks 14/15 (full-width band 28 duplexers replacing the A+B pairs):
	{PassBand{7040, 7480}, PassBand{7580, 8030}, DirMaskBoth, 0, BandLTE28, 28, 1, 1, 0, CalNoLookup}, // 0x42 700 APT, tactical
	{PassBand{7040, 7480}, PassBand{7580, 8030}, DirMaskBoth, 0, BandLTE28, 28, 1, 1, 0, CalNoLookup}, // 0x43 700 APT, covert
}

// Len returns the number of filter band entries. Fixed for the process
// lifetime, so callers may cache it.
func Len() int { return len(FilterBands) }
