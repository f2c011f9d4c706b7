// Package main contains a testing script for the filter switch.
package main

import (
	"github.com/viam-modules/rf-frontend/filterbank"
	"go.viam.com/rdk/logging"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	logger := logging.NewLogger("cli")

	// a tactical board with the standard duplexer fit
	fitted := []uint8{0x31, 0x32, 0x33, 0x34, 0x35, 0x2f, 0x41, 0x42, 0x36, 0x38, 0x01, 0x00}

	requests := []struct {
		freqKHz uint32
		bwKHz   uint32
		lteBand int
		dir     filterbank.Direction
	}{
		{837000, 200, 5, filterbank.DirectionUplink},
		{880000, 200, 5, filterbank.DirectionDownlink},
		{750000, 200, 13, filterbank.DirectionDownlink},
		{100000, 200, 0, filterbank.DirectionUplink},
		{2350000, 10000, 40, filterbank.DirectionUplink},
	}

	for _, req := range requests {
		var site int
		var dir filterbank.Direction
		var extra filterbank.ExtraData
		if req.lteBand > 0 {
			band := filterbank.FromLTEBand(req.lteBand)
			site, dir, extra = filterbank.SelectSiteByBandAndFrequency(fitted, req.freqKHz, req.bwKHz, band, req.dir)
		} else {
			site, dir, extra = filterbank.SelectSiteByFrequency(fitted, req.freqKHz, req.bwKHz)
			dir = filterbank.SwapDirection(extra, dir)
		}

		if site == filterbank.NoFilterSiteAvailable {
			logger.Infof("%d kHz: no filter site available", req.freqKHz)
			continue
		}
		id := int(fitted[site])
		entry := &filterbank.FilterBands[id]
		logger.Infof("%d kHz -> site %d, filter 0x%02x (%s), %s, edges %d-%d dMHz",
			req.freqKHz, site, id, entry.Band, dir,
			filterbank.LowLimit(id, dir), filterbank.HighLimit(id, dir))
	}

	return nil
}
