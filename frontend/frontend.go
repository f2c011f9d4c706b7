// Package frontend implements the RF front-end filter switch module.
package frontend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/viam-modules/rf-frontend/filterbank"
	"go.viam.com/rdk/components/board"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/data"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
)

// Error variables for validation and operations
var (
	// Config validation errors
	errVariantUnknown = errors.New("variant must be one of classic, compact784, compact872, mk2, tactical")
	errFittedLength   = errors.New("fitted_filter_ids must have one entry per filter site of the variant")
	errFittedRange    = errors.New("fitted_filter_ids entries must be between 0 and 255")
	errSelectPins     = errors.New("not enough site_select_pins to address every filter site")
	errFwdRevPin      = errors.New("fwd_rev_pin is required")

	// Operation errors
	errNoFilterSite    = errors.New("no filter site available for the requested channel")
	errFreqRequired    = errors.New("select_channel requires frequency_khz")
	errBandwidthNeeded = errors.New("select_channel requires bandwidth_khz")
	errBadDirection    = errors.New("direction must be uplink or downlink")
	errBadNumber       = errors.New("expected a numeric value")
)

// Model represents the rf front-end filter switch model.
var Model = resource.NewModel("viam", "rf-frontend", "filter-switch")

// Config describes the configuration of the filter switch.
type Config struct {
	BoardName  string `json:"board"`
	Variant    string `json:"variant"`
	SelectPins []int  `json:"site_select_pins"`
	FwdRevPin  *int   `json:"fwd_rev_pin"`
	Fitted     []int  `json:"fitted_filter_ids"`
}

func init() {
	resource.RegisterComponent(
		sensor.API,
		Model,
		resource.Registration[sensor.Sensor, *Config]{
			Constructor: NewFilterSwitch,
		})
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) ([]string, error) {
	var deps []string
	if len(conf.BoardName) == 0 {
		return nil, resource.NewConfigValidationFieldRequiredError(path, "board")
	}

	v := getVariant(conf.Variant)
	if v == variantUnknown {
		return nil, resource.NewConfigValidationError(path, errVariantUnknown)
	}

	if len(conf.Fitted) != v.siteCount() {
		return nil, resource.NewConfigValidationError(path, errFittedLength)
	}
	for _, id := range conf.Fitted {
		// ids past the end of the table are legal and mean "site unpopulated",
		// but they still have to fit the hardware configuration byte.
		if id < 0 || id > 255 {
			return nil, resource.NewConfigValidationError(path, errFittedRange)
		}
	}

	if 1<<len(conf.SelectPins) < v.siteCount() {
		return nil, resource.NewConfigValidationError(path, errSelectPins)
	}

	if conf.FwdRevPin == nil {
		return nil, resource.NewConfigValidationError(path, errFwdRevPin)
	}

	deps = append(deps, conf.BoardName)
	return deps, nil
}

// selection records one resolved channel request.
type selection struct {
	freqKHz      uint32
	bandwidthKHz uint32
	lteBand      int // 0 when the request was frequency-only
	site         int
	filterID     int
	direction    filterbank.Direction // after any swap, drives the hardware
	matched      filterbank.Direction // the branch the channel matched
	extra        filterbank.ExtraData
}

type filterSwitch struct {
	resource.Named
	logger logging.Logger
	mu     sync.Mutex

	variant    variant
	fitted     []uint8
	selectPins []board.GPIOPin
	fwdRevPin  board.GPIOPin

	db   *sql.DB
	last *selection
}

// NewFilterSwitch creates a new filter switch component.
func NewFilterSwitch(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (sensor.Sensor, error) {
	fs := &filterSwitch{
		Named:  conf.ResourceName().AsNamed(),
		logger: logger,
	}

	if err := fs.Reconfigure(ctx, deps, conf); err != nil {
		return nil, err
	}

	return fs, nil
}

// Reconfigure reconfigures the filter switch.
func (fs *filterSwitch) Reconfigure(ctx context.Context, deps resource.Dependencies, conf resource.Config) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	cfg, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return err
	}

	b, err := board.FromDependencies(deps, cfg.BoardName)
	if err != nil {
		return err
	}

	fs.variant = getVariant(cfg.Variant)

	fs.fitted = make([]uint8, len(cfg.Fitted))
	for i, id := range cfg.Fitted {
		fs.fitted[i] = uint8(id)
	}

	// adding io before the pin allows you to use the GPIO number.
	fs.selectPins = fs.selectPins[:0]
	for _, pin := range cfg.SelectPins {
		p, err := b.GPIOPinByName("io" + strconv.Itoa(pin))
		if err != nil {
			return err
		}
		fs.selectPins = append(fs.selectPins, p)
	}

	fwdRevPin, err := b.GPIOPinByName("io" + strconv.Itoa(*cfg.FwdRevPin))
	if err != nil {
		return err
	}
	fs.fwdRevPin = fwdRevPin

	if fs.db == nil {
		if err := fs.setupSqlite(ctx); err != nil {
			return err
		}
	}

	// re-assert the channel that was selected before the restart, if any.
	stored, err := fs.loadChannel(ctx)
	switch {
	case errors.Is(err, errNoChannelInDB):
	case err != nil:
		fs.logger.Warnf("could not read stored channel: %s", err)
	default:
		if _, err := fs.applyChannel(ctx, stored.freqKHz, stored.bandwidthKHz, stored.lteBand, stored.direction); err != nil {
			// the fitted filters may have changed since the channel was saved.
			fs.logger.Warnf("could not re-apply stored channel at %d kHz: %s", stored.freqKHz, err)
		}
	}

	return nil
}

// applyChannel resolves a channel request against the fitted filters, drives
// the switch hardware, and records the selection. Callers hold fs.mu.
func (fs *filterSwitch) applyChannel(
	ctx context.Context,
	freqKHz, bandwidthKHz uint32,
	lteBand int,
	dir filterbank.Direction,
) (*selection, error) {
	var site int
	var resolved, matched filterbank.Direction
	var extra filterbank.ExtraData

	if lteBand > 0 {
		band := filterbank.FromLTEBand(lteBand)
		site, resolved, extra = filterbank.SelectSiteByBandAndFrequency(fs.fitted, freqKHz, bandwidthKHz, band, dir)
		// the selector already applied the swap once; undo it to recover the
		// branch the channel actually matched.
		matched = filterbank.SwapDirection(extra, resolved)
	} else {
		site, matched, extra = filterbank.SelectSiteByFrequency(fs.fitted, freqKHz, bandwidthKHz)
		// the frequency-only selector reports the raw branch; swapping is the
		// caller's job.
		resolved = filterbank.SwapDirection(extra, matched)
	}

	if site == filterbank.NoFilterSiteAvailable {
		return nil, errNoFilterSite
	}

	if err := fs.setSitePins(ctx, site); err != nil {
		return nil, err
	}
	if err := fs.setFwdRevPin(ctx, resolved, extra); err != nil {
		return nil, err
	}

	sel := &selection{
		freqKHz:      freqKHz,
		bandwidthKHz: bandwidthKHz,
		lteBand:      lteBand,
		site:         site,
		filterID:     int(fs.fitted[site]),
		direction:    resolved,
		matched:      matched,
		extra:        extra,
	}
	fs.last = sel

	entry := &filterbank.FilterBands[sel.filterID]
	fs.logger.Debugf("selected filter site %d (%s %s) for %d kHz", site, entry.Band, resolved, freqKHz)

	return sel, nil
}

func (sel *selection) toMap() map[string]interface{} {
	entry := &filterbank.FilterBands[sel.filterID]
	return map[string]interface{}{
		"site":             sel.site,
		"filter_id":        sel.filterID,
		"direction":        sel.direction.String(),
		"band":             entry.Band.String(),
		"lte_band":         int(entry.LTEBand),
		"low_edge":         filterbank.LowLimit(sel.filterID, sel.matched),
		"high_edge":        filterbank.HighLimit(sel.filterID, sel.matched),
		"cal_lookup":       int(entry.Cal),
		"fwd_rev_inverted": entry.Extra.ForRevInverted(),
		"frequency_khz":    int(sel.freqKHz),
		"bandwidth_khz":    int(sel.bandwidthKHz),
	}
}

// DoCommand selects channels and reports filter limits.
func (fs *filterSwitch) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	// Validate that the dependency is correct.
	if _, ok := cmd["validate"]; ok {
		return map[string]interface{}{"validate": 1}, nil
	}

	if req, ok := cmd["select_channel"]; ok {
		reqMap, ok := req.(map[string]interface{})
		if !ok {
			return nil, errFreqRequired
		}
		return fs.handleSelectChannel(ctx, reqMap)
	}

	if req, ok := cmd["filter_limits"]; ok {
		reqMap, ok := req.(map[string]interface{})
		if !ok {
			return nil, errBadNumber
		}
		return handleFilterLimits(reqMap)
	}

	return map[string]interface{}{}, nil
}

func (fs *filterSwitch) handleSelectChannel(ctx context.Context, req map[string]interface{}) (map[string]interface{}, error) {
	freqKHz, err := numberField(req, "frequency_khz")
	if err != nil {
		return nil, errFreqRequired
	}
	bandwidthKHz, err := numberField(req, "bandwidth_khz")
	if err != nil {
		return nil, errBandwidthNeeded
	}

	lteBand := 0
	if _, ok := req["lte_band"]; ok {
		n, err := numberField(req, "lte_band")
		if err != nil {
			return nil, err
		}
		lteBand = n
	}

	dir := filterbank.DirectionUplink
	if d, ok := req["direction"]; ok {
		dir, err = parseDirection(d)
		if err != nil {
			return nil, err
		}
	}

	sel, err := fs.applyChannel(ctx, uint32(freqKHz), uint32(bandwidthKHz), lteBand, dir)
	if err != nil {
		return nil, err
	}

	if err := fs.saveChannel(ctx, sel); err != nil {
		fs.logger.Warnf("could not persist channel selection: %s", err)
	}

	return map[string]interface{}{"select_channel": sel.toMap()}, nil
}

func handleFilterLimits(req map[string]interface{}) (map[string]interface{}, error) {
	filterID, err := numberField(req, "filter_id")
	if err != nil {
		return nil, err
	}

	dir := filterbank.DirectionUnknown
	if d, ok := req["direction"]; ok {
		dir, err = parseDirection(d)
		if err != nil {
			return nil, err
		}
	}

	// out-of-range ids report zero edges rather than failing, matching the
	// firmware contract the calibration tooling expects.
	return map[string]interface{}{
		"filter_limits": map[string]interface{}{
			"low_edge":  filterbank.LowLimit(filterID, dir),
			"high_edge": filterbank.HighLimit(filterID, dir),
		},
	}, nil
}

// numberField reads a numeric field from a DoCommand map. Values arrive as
// float64 once they have been through proto serialization.
func numberField(req map[string]interface{}, key string) (int, error) {
	switch n := req[key].(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%w for %q", errBadNumber, key)
	}
}

func parseDirection(v interface{}) (filterbank.Direction, error) {
	s, ok := v.(string)
	if !ok {
		return filterbank.DirectionUnknown, errBadDirection
	}
	switch s {
	case "uplink":
		return filterbank.DirectionUplink, nil
	case "downlink":
		return filterbank.DirectionDownlink, nil
	default:
		return filterbank.DirectionUnknown, errBadDirection
	}
}

// Readings returns the last channel selection.
func (fs *filterSwitch) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.last == nil {
		// Tell the collector not to capture the empty data.
		if extra[data.FromDMString] == true {
			return map[string]interface{}{}, data.ErrNoCaptureToStore
		}
		return map[string]interface{}{}, nil
	}

	return fs.last.toMap(), nil
}

// Close closes the filter switch.
func (fs *filterSwitch) Close(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.db != nil {
		err := fs.db.Close()
		fs.db = nil
		return err
	}
	return nil
}
