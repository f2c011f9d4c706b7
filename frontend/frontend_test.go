package frontend

import (
	"context"
	"testing"

	"github.com/viam-modules/rf-frontend/filterbank"
	"github.com/viam-modules/rf-frontend/testutils"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/data"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/test"
	"go.viam.com/utils/protoutils"
)

const testBoardName = "pi"

func testConfig() *Config {
	fwdRevPin := 22
	// tactical board: 12 sites, GSM850/EGSM900/DCS1800 duplexers, a swapped
	// LTE13 part, wideband, and empty sites.
	return &Config{
		BoardName:  testBoardName,
		Variant:    "tactical",
		SelectPins: []int{5, 6, 13, 19},
		FwdRevPin:  &fwdRevPin,
		Fitted:     []int{0x31, 0x32, 0x33, 0x36, 0x01, 0, 0, 0, 0, 0, 0, 0},
	}
}

func newTestSwitch(t *testing.T) (*filterSwitch, *testutils.PinStates) {
	t.Helper()
	deps, pins := testutils.NewBoardTestEnv(t, testBoardName)
	conf := resource.Config{
		Name:                "test-frontend",
		API:                 sensor.API,
		Model:               Model,
		ConvertedAttributes: testConfig(),
	}

	s, err := NewFilterSwitch(context.Background(), deps, conf, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() {
		test.That(t, s.(*filterSwitch).Close(context.Background()), test.ShouldBeNil)
	})
	return s.(*filterSwitch), pins
}

func TestValidate(t *testing.T) {
	conf := testConfig()
	deps, err := conf.Validate("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, deps, test.ShouldResemble, []string{testBoardName})

	// missing board
	conf = testConfig()
	conf.BoardName = ""
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationFieldRequiredError("", "board"))

	// unknown variant
	conf = testConfig()
	conf.Variant = "mk3"
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationError("", errVariantUnknown))

	// fitted list must match the variant's site count
	conf = testConfig()
	conf.Fitted = conf.Fitted[:3]
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationError("", errFittedLength))

	// fitted ids must fit a hardware byte
	conf = testConfig()
	conf.Fitted[0] = 300
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationError("", errFittedRange))

	// three pins cannot address twelve sites
	conf = testConfig()
	conf.SelectPins = []int{5, 6, 13}
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationError("", errSelectPins))

	// fwd/rev pin required
	conf = testConfig()
	conf.FwdRevPin = nil
	_, err = conf.Validate("")
	test.That(t, err, test.ShouldBeError, resource.NewConfigValidationError("", errFwdRevPin))
}

func TestDoCommandValidate(t *testing.T) {
	fs, _ := newTestSwitch(t)

	resp, err := fs.DoCommand(context.Background(), map[string]interface{}{"validate": 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp["validate"], test.ShouldEqual, 1)
}

// need to simulate what happens when the DoCommand message is serialized/deserialized into proto
func doOverWire(t *testing.T, s sensor.Sensor, cmd map[string]interface{}) (map[string]interface{}, error) {
	t.Helper()
	command, err := protoutils.StructToStructPb(cmd)
	test.That(t, err, test.ShouldBeNil)
	return s.DoCommand(context.Background(), command.AsMap())
}

func TestSelectChannel(t *testing.T) {
	fs, pins := newTestSwitch(t)

	// GSM850 uplink at 837.0 MHz lands on the first site
	resp, err := doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 837000,
			"bandwidth_khz": 200,
			"lte_band":      5,
			"direction":     "uplink",
		},
	})
	test.That(t, err, test.ShouldBeNil)
	sel, ok := resp["select_channel"].(map[string]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sel["site"], test.ShouldEqual, 0)
	test.That(t, sel["direction"], test.ShouldEqual, "uplink")
	test.That(t, sel["band"], test.ShouldEqual, "GSM850")
	test.That(t, sel["low_edge"], test.ShouldEqual, 8240)
	test.That(t, sel["high_edge"], test.ShouldEqual, 8490)
	test.That(t, sel["fwd_rev_inverted"], test.ShouldBeFalse)

	// uplink is the reverse path, driven with the control line high
	level, set := pins.Level("io22")
	test.That(t, set, test.ShouldBeTrue)
	test.That(t, level, test.ShouldBeTrue)

	// a swapped part reports the swapped direction exactly once
	resp, err = doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 750000,
			"bandwidth_khz": 200,
			"lte_band":      13,
			"direction":     "downlink",
		},
	})
	test.That(t, err, test.ShouldBeNil)
	sel = resp["select_channel"].(map[string]interface{})
	test.That(t, sel["site"], test.ShouldEqual, 3)
	test.That(t, sel["direction"], test.ShouldEqual, "uplink")
	test.That(t, sel["band"], test.ShouldEqual, "LTE_13")

	// frequency-only request picks the closest passband
	resp, err = doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 890000,
			"bandwidth_khz": 200,
		},
	})
	test.That(t, err, test.ShouldBeNil)
	sel = resp["select_channel"].(map[string]interface{})
	test.That(t, sel["site"], test.ShouldEqual, 1)
	test.That(t, sel["band"], test.ShouldEqual, "EGSM900")

	// frequency with no covering filter falls back to wideband
	resp, err = doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 100000,
			"bandwidth_khz": 200,
		},
	})
	test.That(t, err, test.ShouldBeNil)
	sel = resp["select_channel"].(map[string]interface{})
	test.That(t, sel["site"], test.ShouldEqual, 4)
	test.That(t, sel["band"], test.ShouldEqual, "WIDEBAND")

	// out-of-range frequency is rejected as channel-unsupported
	_, err = doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 6500000,
			"bandwidth_khz": 200,
		},
	})
	test.That(t, err, test.ShouldBeError, errNoFilterSite)

	// missing frequency
	_, err = doOverWire(t, fs, map[string]interface{}{
		"select_channel": map[string]interface{}{"bandwidth_khz": 200},
	})
	test.That(t, err, test.ShouldBeError, errFreqRequired)
}

func TestFilterLimitsCommand(t *testing.T) {
	fs, _ := newTestSwitch(t)

	resp, err := doOverWire(t, fs, map[string]interface{}{
		"filter_limits": map[string]interface{}{
			"filter_id": 0x19,
			"direction": "downlink",
		},
	})
	test.That(t, err, test.ShouldBeNil)
	limits, ok := resp["filter_limits"].(map[string]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, limits["low_edge"], test.ShouldEqual, 8690)
	test.That(t, limits["high_edge"], test.ShouldEqual, 8940)

	// out-of-range ids read as zero, not an error
	resp, err = doOverWire(t, fs, map[string]interface{}{
		"filter_limits": map[string]interface{}{"filter_id": 500},
	})
	test.That(t, err, test.ShouldBeNil)
	limits = resp["filter_limits"].(map[string]interface{})
	test.That(t, limits["low_edge"], test.ShouldEqual, 0)
	test.That(t, limits["high_edge"], test.ShouldEqual, 0)
}

func TestReadings(t *testing.T) {
	fs, _ := newTestSwitch(t)

	// no channel selected yet
	readings, err := fs.Readings(context.Background(), map[string]interface{}{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(readings), test.ShouldEqual, 0)

	// the collector is told not to capture empty data
	_, err = fs.Readings(context.Background(), map[string]interface{}{data.FromDMString: true})
	test.That(t, err, test.ShouldBeError, data.ErrNoCaptureToStore)

	_, err = fs.DoCommand(context.Background(), map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 837000,
			"bandwidth_khz": 200,
		},
	})
	test.That(t, err, test.ShouldBeNil)

	readings, err = fs.Readings(context.Background(), map[string]interface{}{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, readings["site"], test.ShouldEqual, 0)
	test.That(t, readings["band"], test.ShouldEqual, "GSM850")
	test.That(t, readings["frequency_khz"], test.ShouldEqual, 837000)
}

func TestChannelPersistence(t *testing.T) {
	deps, pins := testutils.NewBoardTestEnv(t, testBoardName)
	conf := resource.Config{
		Name:                "test-frontend",
		API:                 sensor.API,
		Model:               Model,
		ConvertedAttributes: testConfig(),
	}
	logger := logging.NewTestLogger(t)

	s, err := NewFilterSwitch(context.Background(), deps, conf, logger)
	test.That(t, err, test.ShouldBeNil)

	_, err = s.DoCommand(context.Background(), map[string]interface{}{
		"select_channel": map[string]interface{}{
			"frequency_khz": 837000,
			"bandwidth_khz": 200,
			"lte_band":      5,
			"direction":     "uplink",
		},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.(*filterSwitch).Close(context.Background()), test.ShouldBeNil)

	// a fresh component in the same data dir re-asserts the stored channel
	s, err = NewFilterSwitch(context.Background(), deps, conf, logger)
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, s.(*filterSwitch).Close(context.Background()), test.ShouldBeNil)
	}()

	fs := s.(*filterSwitch)
	test.That(t, fs.last, test.ShouldNotBeNil)
	test.That(t, fs.last.site, test.ShouldEqual, 0)
	test.That(t, fs.last.direction, test.ShouldEqual, filterbank.DirectionUplink)
	test.That(t, pins.SetCount(), test.ShouldBeGreaterThan, 0)
}

func TestGetVariant(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  variant
		siteCount int
	}{
		{
			name:      "classic board",
			input:     "classic",
			expected:  variantClassic,
			siteCount: 14,
		},
		{
			name:      "compact 784 board",
			input:     "784",
			expected:  variantCompact784,
			siteCount: 8,
		},
		{
			name:      "compact 872 board",
			input:     "compact872",
			expected:  variantCompact872,
			siteCount: 11,
		},
		{
			name:      "mk2 board",
			input:     "MK2",
			expected:  variantMk2,
			siteCount: 16,
		},
		{
			name:      "tactical board",
			input:     "tactical",
			expected:  variantTactical,
			siteCount: 12,
		},
		{
			name:      "unknown board",
			input:     "INVALID",
			expected:  variantUnknown,
			siteCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := getVariant(tt.input)
			test.That(t, v, test.ShouldEqual, tt.expected)
			test.That(t, v.siteCount(), test.ShouldEqual, tt.siteCount)
		})
	}
}
