// Package platform talks to the desktop session the editor runs in.
package platform

// AppName is reported to the notification server.
const AppName = "Easel"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath points to an image the server may show next to the message.
	IconPath string
	// Timeout in milliseconds; zero uses the server default of five seconds.
	Timeout int32
}

func (o Options) timeout() int32 {
	if o.Timeout <= 0 {
		return 5000
	}
	return o.Timeout
}
