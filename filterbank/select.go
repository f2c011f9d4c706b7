package filterbank

import "math"

// NoFilterSiteAvailable is returned as the site index when no fitted filter
// covers the requested channel. It is a normal outcome, not a fault; callers
// must reject the channel request.
const NoFilterSiteAvailable = -1

// Channel frequencies at or above 6 GHz are outside anything the filter bank
// can switch, so the selectors fail fast without touching the table.
const maxFrequencyKHz = 6000000

// SwapDirection inverts the direction when the part's forward and reverse
// paths are physically swapped, and is the identity otherwise. Applying it
// twice with the same extra data always returns the original direction.
func SwapDirection(extra ExtraData, dir Direction) Direction {
	if !extra.SwapForRev() {
		return dir
	}
	if dir == DirectionUplink {
		return DirectionDownlink
	}
	return DirectionUplink
}

// quantizeChannel converts a channel centre and bandwidth in kHz to the
// centre, low and high edges in tenths of a MHz, rounding half up.
func quantizeChannel(freqKHz, bandwidthKHz uint32) (centre, low, high uint16) {
	half := (bandwidthKHz + 1) / 2
	centre = uint16((freqKHz + 50) / 100)
	low = uint16((freqKHz - half + 50) / 100)
	high = uint16((freqKHz + half + 50) / 100)
	return centre, low, high
}

func centreOffset(p PassBand, centre uint16) int {
	c := p.Centre()
	if int(centre) >= c {
		return int(centre) - c
	}
	return c - int(centre)
}

// SelectSiteByFrequency finds the fitted site whose passband fully contains
// the requested channel, independent of logical band. fitted holds one table
// index per physical site; out-of-range indices mean nothing is fitted there
// and are skipped.
//
// Among the sites that contain the channel, the one whose passband centre is
// closest to the channel centre wins; on a tie the earlier site keeps the
// win. The wideband entry never competes: if it is fitted it is only used as
// a fallback when no real filter contains the channel, with the direction
// forced to uplink and no extra data.
//
// The returned extra data is the winning entry's raw flags; the swap flag is
// NOT applied to the returned direction here. Callers that need the physical
// direction must call SwapDirection themselves.
func SelectSiteByFrequency(fitted []uint8, freqKHz, bandwidthKHz uint32) (int, Direction, ExtraData) {
	if freqKHz >= maxFrequencyKHz {
		return NoFilterSiteAvailable, DirectionUnknown, 0
	}
	centre, low, high := quantizeChannel(freqKHz, bandwidthKHz)

	bestSite := NoFilterSiteAvailable
	bestDir := DirectionUnknown
	var bestExtra ExtraData
	minOffset := math.MaxInt
	widebandSite := NoFilterSiteAvailable

	for site, filterID := range fitted {
		if int(filterID) >= len(FilterBands) {
			// nothing sensible fitted at this site
			continue
		}
		f := &FilterBands[filterID]

		if filterID == WidebandFilterID {
			widebandSite = site
		}

		for _, dir := range []Direction{DirectionUplink, DirectionDownlink} {
			branch := f.Branch(dir)
			if !branch.Contains(low, high) {
				continue
			}
			offset := centreOffset(branch, centre)
			if offset < minOffset && filterID != WidebandFilterID {
				// Use the filter where the channel sits closest to the middle
				// of the passband. Wideband might be closer to its middle than
				// a proper filter is, but a proper filter is always preferred.
				minOffset = offset
				bestSite = site
				bestDir = dir
				bestExtra = f.Extra
			}
		}
	}

	if bestSite == NoFilterSiteAvailable && widebandSite != NoFilterSiteAvailable {
		return widebandSite, DirectionUplink, 0
	}
	return bestSite, bestDir, bestExtra
}

// SelectSiteByBandAndFrequency restricts the search to fitted sites carrying
// the requested logical band and direction, testing only the branch for that
// direction. If no band-qualified site contains the channel it falls back to
// SelectSiteByFrequency over the full table, so the request can silently
// resolve to a different band's filter, or to wideband. Callers must treat
// the returned site, not the requested band, as authoritative.
//
// The swap flag of the winning entry is applied to the direction exactly
// once, in both the band-qualified and the fallback path.
func SelectSiteByBandAndFrequency(
	fitted []uint8,
	freqKHz, bandwidthKHz uint32,
	band Band,
	dir Direction,
) (int, Direction, ExtraData) {
	if freqKHz >= maxFrequencyKHz {
		return NoFilterSiteAvailable, dir, 0
	}
	centre, low, high := quantizeChannel(freqKHz, bandwidthKHz)

	testMask := DirMaskDownlink
	if dir == DirectionUplink {
		testMask = DirMaskUplink
	}

	bestSite := NoFilterSiteAvailable
	var bestExtra ExtraData
	minOffset := math.MaxInt

	for site, filterID := range fitted {
		if int(filterID) >= len(FilterBands) {
			continue
		}
		f := &FilterBands[filterID]
		if f.Band != band || f.Directions&testMask == 0 {
			continue
		}
		// More than one filter can cover parts of the same band, so the
		// channel may be in the passband of several and we pick between them.
		branch := f.Branch(dir)
		if !branch.Contains(low, high) {
			continue
		}
		offset := centreOffset(branch, centre)
		if offset < minOffset && filterID != WidebandFilterID {
			minOffset = offset
			bestSite = site
			bestExtra = f.Extra
		}
	}

	if bestSite == NoFilterSiteAvailable {
		// The frequency may still be covered by another band's filter.
		site, freqDir, extra := SelectSiteByFrequency(fitted, freqKHz, bandwidthKHz)
		if site != NoFilterSiteAvailable {
			dir = freqDir
		}
		return site, SwapDirection(extra, dir), extra
	}
	return bestSite, SwapDirection(bestExtra, dir), bestExtra
}

// limit returns the stored passband edge for a table entry. An out-of-range
// filter id returns 0, which is indistinguishable from a legitimately zero
// edge; dependent calibration tooling relies on exactly this behavior, so it
// is preserved.
func limit(filterID int, dir Direction, low bool) int {
	if filterID < 0 || filterID >= len(FilterBands) {
		return 0
	}
	f := &FilterBands[filterID]

	var branch PassBand
	switch dir {
	case DirectionUplink:
		branch = f.Uplink
	case DirectionDownlink:
		branch = f.Downlink
	default:
		// Presume a single filter rather than a duplexer: its one defined
		// branch may be stored in either slot.
		branch = f.Uplink
		if edge(branch, low) == 0 {
			branch = f.Downlink
		}
	}
	return edge(branch, low)
}

func edge(p PassBand, low bool) int {
	if low {
		return int(p.Low)
	}
	return int(p.High)
}

// LowLimit returns the low passband edge in tenths of a MHz for the given
// table entry and direction, or 0 when the entry or branch does not exist.
func LowLimit(filterID int, dir Direction) int {
	return limit(filterID, dir, true)
}

// HighLimit returns the high passband edge in tenths of a MHz for the given
// table entry and direction, or 0 when the entry or branch does not exist.
func HighLimit(filterID int, dir Direction) int {
	return limit(filterID, dir, false)
}

// LadonID returns the legacy subsystem's cross-reference id for a table
// entry, or -1 when the entry is out of range.
func LadonID(filterID int) int {
	if filterID < 0 || filterID >= len(FilterBands) {
		return -1
	}
	return int(FilterBands[filterID].LadonID)
}
