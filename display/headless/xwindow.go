package headless

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

const keysymEscape xproto.Keysym = 0xff1b

// An X11 window used as the visible status window of the headless backend. It
// carries the title and reports Escape presses and window manager close
// requests. Rendering happens on the EGL pbuffer.
type xWindow struct {
	conn *xgb.Conn
	wid  xproto.Window

	atomWMProtocols  xproto.Atom
	atomDeleteWindow xproto.Atom
	atomNetWMName    xproto.Atom
	atomUTF8String   xproto.Atom

	escapeCodes map[xproto.Keycode]struct{}
}

// Connect to the X server named by $DISPLAY and map a window of the
// requested size.
func openXWindow(width, height int, title string) (*xWindow, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to X server")
	}

	w := &xWindow{
		conn:        conn,
		escapeCodes: make(map[xproto.Keycode]struct{}),
	}
	if err = w.init(width, height, title); err != nil {
		conn.Close()
		return nil, err
	}
	return w, nil
}

func (w *xWindow) init(width, height int, title string) error {
	setup := xproto.Setup(w.conn)
	screen := setup.DefaultScreen(w.conn)

	wid, err := xproto.NewWindowId(w.conn)
	if err != nil {
		return errors.Wrap(err, "could not allocate X window id")
	}
	w.wid = wid

	err = xproto.CreateWindowChecked(
		w.conn,
		screen.RootDepth,
		wid,
		screen.Root,
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskButtonPress | xproto.EventMaskStructureNotify,
		},
	).Check()
	if err != nil {
		return errors.Wrap(err, "could not create X window")
	}

	for _, a := range []struct {
		name string
		atom *xproto.Atom
	}{
		{"WM_PROTOCOLS", &w.atomWMProtocols},
		{"WM_DELETE_WINDOW", &w.atomDeleteWindow},
		{"_NET_WM_NAME", &w.atomNetWMName},
		{"UTF8_STRING", &w.atomUTF8String},
	} {
		reply, err := xproto.InternAtom(w.conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return errors.Wrapf(err, "could not intern atom %s", a.name)
		}
		*a.atom = reply.Atom
	}

	// Ask the window manager to send close requests instead of killing the connection
	data := make([]byte, 4)
	xgb.Put32(data, uint32(w.atomDeleteWindow))
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, wid, w.atomWMProtocols, xproto.AtomAtom, 32, 1, data)

	w.loadEscapeKeycodes(setup)
	w.setTitle(title)
	xproto.MapWindow(w.conn, wid)
	return nil
}

// Find the keycodes that produce the Escape keysym with the current keyboard
// mapping.
func (w *xWindow) loadEscapeKeycodes(setup *xproto.SetupInfo) {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	mapping, err := xproto.GetKeyboardMapping(w.conn, setup.MinKeycode, count).Reply()
	if err != nil || mapping.KeysymsPerKeycode == 0 {
		// Escape on the evdev/xfree86 keymaps
		w.escapeCodes[9] = struct{}{}
		return
	}

	perCode := int(mapping.KeysymsPerKeycode)
	for index := 0; index < int(count); index++ {
		for col := 0; col < perCode; col++ {
			if mapping.Keysyms[index*perCode+col] == keysymEscape {
				w.escapeCodes[setup.MinKeycode+xproto.Keycode(index)] = struct{}{}
				break
			}
		}
	}
}

func (w *xWindow) setTitle(title string) {
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, w.wid, xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, w.wid, w.atomNetWMName, w.atomUTF8String, 8, uint32(len(title)), []byte(title))
	w.conn.Sync()
}

// Drain pending events. Returns false if the user asked to close the window.
func (w *xWindow) poll() bool {
	for {
		ev, xerr := w.conn.PollForEvent()
		if ev == nil && xerr == nil {
			return true
		}
		if xerr != nil {
			logger.Debugf("X11 error: %s", xerr)
			continue
		}

		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			if _, isEscape := w.escapeCodes[e.Detail]; isEscape {
				return false
			}
		case xproto.ClientMessageEvent:
			if e.Format == 32 && xproto.Atom(e.Data.Data32[0]) == w.atomDeleteWindow {
				return false
			}
		case xproto.DestroyNotifyEvent:
			if e.Window == w.wid {
				return false
			}
		}
	}
}

func (w *xWindow) close() {
	if w.conn == nil {
		return
	}
	xproto.DestroyWindow(w.conn, w.wid)
	w.conn.Close()
	w.conn = nil
}
