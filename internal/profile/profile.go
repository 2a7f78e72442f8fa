package profile

// AutomountSection controls host drive mounting inside the guest.
type AutomountSection struct {
	Enabled bool
	// Options holds the mount options string. Empty means the runtime
	// default; the rendered line is commented out.
	Options    string
	MountFsTab bool
}

// NetworkSection controls the files WSL generates at boot.
type NetworkSection struct {
	GenerateHosts      bool
	GenerateResolvConf bool
}

// InteropSection controls launching Windows executables from the guest.
type InteropSection struct {
	Enabled           bool
	AppendWindowsPath bool
}

// UserSection sets the default login user. An empty Default leaves the
// runtime's choice in place and renders as a commented-out line.
type UserSection struct {
	Default string
}

// BootSection controls init behaviour. An empty Command renders as a
// commented-out line.
type BootSection struct {
	Systemd bool
	Command string
}

// Profile is a named bundle of wsl.conf settings. Every profile
// populates all five sections; rendering emits them in the fixed order
// automount, network, interop, user, boot.
type Profile struct {
	Kind        Kind
	Description string

	Automount AutomountSection
	Network   NetworkSection
	Interop   InteropSection
	User      UserSection
	Boot      BootSection
}
