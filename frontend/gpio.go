package frontend

import (
	"context"
	"errors"
	"time"

	"github.com/viam-modules/rf-frontend/filterbank"
	"go.viam.com/utils"
)

const msToWait = 10

// the RF relays need a moment to settle between line changes or the switch
// matrix can glitch through an unintended path.
func waitGPIO(ctx context.Context) error {
	if !utils.SelectContextOrWait(ctx, msToWait*time.Millisecond) {
		return errors.New("context cancelled")
	}
	return nil
}

// setSitePins drives the site-select lines with the binary encoding of the
// site index, least significant bit first.
func (fs *filterSwitch) setSitePins(ctx context.Context, site int) error {
	for i, pin := range fs.selectPins {
		if err := pin.Set(ctx, site&(1<<i) != 0, nil); err != nil {
			return err
		}
		if err := waitGPIO(ctx); err != nil {
			return err
		}
	}
	return nil
}

// setFwdRevPin drives the forward/reverse control line. By board convention
// the line is low for the forward (downlink) path; parts flagged with the
// inverted-control quirk need the opposite polarity. The swap flag plays no
// part here, it is already folded into the direction.
func (fs *filterSwitch) setFwdRevPin(ctx context.Context, dir filterbank.Direction, extra filterbank.ExtraData) error {
	high := dir == filterbank.DirectionUplink
	if extra.ForRevInverted() {
		high = !high
	}
	if err := fs.fwdRevPin.Set(ctx, high, nil); err != nil {
		return err
	}
	return waitGPIO(ctx)
}
