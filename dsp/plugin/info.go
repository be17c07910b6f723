package plugin

// Info is descriptive metadata a host bridge may register. It carries no
// behaviour.
type Info struct {
	Name        string
	Vendor      string
	Description string
	Version     string
	ID          string
	Channels    int
}

// DefaultInfo describes the stereo-in, stereo-out effect.
func DefaultInfo() Info {
	return Info{
		Name:        "Bruh Sine",
		Vendor:      "sout",
		Description: "What the hell with the sine function",
		Version:     "0.1.0",
		ID:          "org.eu.sout.audio.bruh-sine",
		Channels:    2,
	}
}
