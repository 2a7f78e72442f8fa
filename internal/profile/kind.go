// Package profile defines the wsl.conf configuration profiles shipped
// with the distribution and renders them to the format the WSL runtime
// parses.
package profile

import "fmt"

// Kind identifies a configuration profile. It is a closed enumeration;
// ParseKind is the only way to obtain one from user input.
type Kind string

const (
	// KindDevelopment enables drive mounting, interop and systemd for
	// day-to-day software development.
	KindDevelopment Kind = "development"
	// KindGaming tunes the distribution for game servers and launchers.
	KindGaming Kind = "gaming"
	// KindServer is the hardened profile: no automount, no interop.
	KindServer Kind = "server"
	// KindMinimal keeps the distribution as small as possible, without
	// systemd.
	KindMinimal Kind = "minimal"
	// KindDesktop targets graphical sessions under WSLg.
	KindDesktop Kind = "desktop"
	// KindCustom is the user-parametrized profile.
	KindCustom Kind = "custom"
)

// Kinds lists every valid profile kind in a fixed order.
func Kinds() []Kind {
	return []Kind{
		KindDevelopment,
		KindGaming,
		KindServer,
		KindMinimal,
		KindDesktop,
		KindCustom,
	}
}

// ParseKind converts a string into a Kind. Unknown identifiers are
// rejected; there is no fallback profile.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDevelopment, KindGaming, KindServer, KindMinimal, KindDesktop, KindCustom:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown profile %q: must be one of development, gaming, server, minimal, desktop, custom", s)
	}
}

// String returns the profile identifier.
func (k Kind) String() string {
	return string(k)
}
