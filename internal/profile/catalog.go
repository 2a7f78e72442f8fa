package profile

import "fmt"

// Catalog returns the fixed named profiles in declaration order. The
// custom profile is excluded; it is parametrized through NewCustom.
func Catalog() []Profile {
	return []Profile{
		{
			Kind:        KindDevelopment,
			Description: "Full tooling: drive mounting with metadata, Windows interop and systemd.",
			Automount: AutomountSection{
				Enabled:    true,
				Options:    "metadata,umask=22,fmask=11",
				MountFsTab: true,
			},
			Network: NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
			Interop: InteropSection{Enabled: true, AppendWindowsPath: true},
			Boot:    BootSection{Systemd: true},
		},
		{
			Kind:        KindGaming,
			Description: "Game server hosting: interop for launchers, no fstab processing.",
			Automount: AutomountSection{
				Enabled: true,
				Options: "metadata",
			},
			Network: NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
			Interop: InteropSection{Enabled: true, AppendWindowsPath: true},
			Boot:    BootSection{Systemd: true},
		},
		{
			Kind:        KindServer,
			Description: "Security hardened: host drives stay unmounted and interop is disabled.",
			Automount:   AutomountSection{Enabled: false},
			Network:     NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
			Interop:     InteropSection{Enabled: false, AppendWindowsPath: false},
			Boot:        BootSection{Systemd: true},
		},
		{
			Kind:        KindMinimal,
			Description: "Smallest footprint: runtime defaults for mounting, no systemd.",
			Automount:   AutomountSection{Enabled: true},
			Network:     NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
			Interop:     InteropSection{Enabled: true, AppendWindowsPath: false},
			Boot:        BootSection{Systemd: false},
		},
		{
			Kind:        KindDesktop,
			Description: "Graphical sessions under WSLg: full interop and fstab mounts.",
			Automount: AutomountSection{
				Enabled:    true,
				Options:    "metadata",
				MountFsTab: true,
			},
			Network: NetworkSection{GenerateHosts: true, GenerateResolvConf: true},
			Interop: InteropSection{Enabled: true, AppendWindowsPath: true},
			Boot:    BootSection{Systemd: true},
		},
	}
}

// ForKind returns the profile for a kind. KindCustom yields the custom
// profile with all-default options; callers wanting specific options
// use NewCustom directly.
func ForKind(kind Kind) (Profile, error) {
	if kind == KindCustom {
		return NewCustom(DefaultCustomOptions()), nil
	}
	for _, p := range Catalog() {
		if p.Kind == kind {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q", kind)
}
