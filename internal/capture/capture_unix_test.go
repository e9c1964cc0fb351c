//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prev })

	values := portalOptions(true, true)
	if v, ok := values["interactive"].Value().(bool); !ok || !v {
		t.Fatalf("interactive = %v", values["interactive"])
	}
	if v, _ := values["cursor_mode"].Value().(string); v != "embedded" {
		t.Fatalf("cursor_mode = %q", v)
	}
	if v, _ := values["handle_token"].Value().(string); v != "test-token" {
		t.Fatalf("handle_token = %q", v)
	}
	if v, _ := portalOptions(false, false)["cursor_mode"].Value().(string); v != "hidden" {
		t.Fatalf("cursor_mode = %q", v)
	}
}

func TestResponsePath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screen%20shot.png")}}
	path, err := responsePath(ok)
	if err != nil || path != "/tmp/Screen shot.png" {
		t.Fatalf("responsePath = %q, %v", path, err)
	}
	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := responsePath(cancelled); err == nil {
		t.Fatalf("cancelled response accepted")
	}
	if _, err := responsePath([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("short response accepted")
	}
}

func TestDecodeZPixmap(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}}
	// two pixels per row with a 4 byte pad
	data := []byte{
		1, 2, 3, 0, 4, 5, 6, 0, 9, 9, 9, 9,
		7, 8, 9, 0, 10, 11, 12, 0, 9, 9, 9, 9,
	}
	img, err := decodeZPixmap(formats, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("decodeZPixmap: %v", err)
	}
	if got := img.RGBAAt(1, 1); got.R != 12 || got.G != 11 || got.B != 10 || got.A != 255 {
		t.Fatalf("pixel = %v", got)
	}
	if _, err := decodeZPixmap(formats, 16, data, 2, 2); err == nil {
		t.Fatalf("unknown depth accepted")
	}
	if _, err := decodeZPixmap(formats, 24, data[:5], 2, 2); err == nil {
		t.Fatalf("bad stride accepted")
	}
}
