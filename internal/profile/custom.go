package profile

// CustomOptions are the settings exposed by the custom profile builder.
// Anything not listed here keeps the runtime default.
type CustomOptions struct {
	AutomountEnabled  bool
	InteropEnabled    bool
	AppendWindowsPath bool
	SystemdEnabled    bool
	// BootCommand is run by the init process at distribution start.
	// Empty means no command line is emitted at all.
	BootCommand string
}

// DefaultCustomOptions returns the documented defaults: automount on,
// interop on, Windows PATH not appended, systemd on, no boot command.
func DefaultCustomOptions() CustomOptions {
	return CustomOptions{
		AutomountEnabled:  true,
		InteropEnabled:    true,
		AppendWindowsPath: false,
		SystemdEnabled:    true,
	}
}

// NewCustom builds the custom profile from the given options. The
// result has the same five-section shape as the named profiles.
func NewCustom(opts CustomOptions) Profile {
	return Profile{
		Kind:        KindCustom,
		Description: "User supplied settings; edit /etc/wsl.conf to adjust further.",
		Automount:   AutomountSection{Enabled: opts.AutomountEnabled},
		Network:     NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
		Interop: InteropSection{
			Enabled:           opts.InteropEnabled,
			AppendWindowsPath: opts.AppendWindowsPath,
		},
		Boot: BootSection{
			Systemd: opts.SystemdEnabled,
			Command: opts.BootCommand,
		},
	}
}
