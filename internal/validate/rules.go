package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/ini.v1"
)

// requiredFile names one file every build tree must carry. Pattern is a
// glob matched against top-level directory entries, so assets like the
// icon may vary in exact name.
type requiredFile struct {
	Label   string
	Pattern string
}

// requiredFiles is the fixed checklist of top-level files.
var requiredFiles = []requiredFile{
	{"build descriptor", "Makefile"},
	{"runtime configuration", "wsl.conf"},
	{"distribution configuration", "wsl-distribution.conf"},
	{"shell profile", "profile.sh"},
	{"icon asset", "*.ico"},
	{"capability hook", "setcap.sh"},
	{"service unit", "*.service"},
	{"license", "LICENSE*"},
	{"readme", "README*"},
}

// requiredTargets are the Makefile targets the build pipeline invokes.
var requiredTargets = []string{"all", "clean", "zip"}

// unitSectionMarker is the section header every systemd unit carries.
const unitSectionMarker = "[Unit]"

// DefaultRules returns the full build-tree checklist.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "required files", Check: checkRequiredFiles},
		{Name: "service unit", Check: checkServiceUnit},
		{Name: "build targets", Check: checkBuildTargets},
		{Name: "systemd setting", Check: checkSystemdSetting},
	}
}

// matchEntry returns the first top-level entry matching the pattern.
func matchEntry(dir, pattern string) (string, bool) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return "", false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && g.Match(entry.Name()) {
			return entry.Name(), true
		}
	}
	return "", false
}

// checkRequiredFiles verifies the fixed list of top-level files. Every
// file is checked; each missing one is its own error.
func checkRequiredFiles(dir string) []Result {
	var results []Result
	for _, rf := range requiredFiles {
		name, ok := matchEntry(dir, rf.Pattern)
		if !ok {
			results = append(results, Result{
				Name:    rf.Label,
				Status:  StatusError,
				Message: fmt.Sprintf("no file matching %q", rf.Pattern),
			})
			continue
		}
		results = append(results, Result{
			Name:    rf.Label,
			Status:  StatusOK,
			Message: name,
		})
	}
	return results
}

// checkServiceUnit verifies the service unit carries a recognizable
// section marker. A unit without the marker is a hard error, not a
// warning; systemd would reject it at boot.
func checkServiceUnit(dir string) []Result {
	name, ok := matchEntry(dir, "*.service")
	if !ok {
		return []Result{{
			Name:    "service unit marker",
			Status:  StatusSkipped,
			Message: "no service unit file",
		}}
	}

	// #nosec G304 - name is a directory entry of the tree under validation
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return []Result{{
			Name:    "service unit marker",
			Status:  StatusError,
			Message: fmt.Sprintf("cannot read %s: %v", name, err),
		}}
	}

	if !strings.Contains(string(data), unitSectionMarker) {
		return []Result{{
			Name:    "service unit marker",
			Status:  StatusError,
			Message: fmt.Sprintf("%s has no %s section", name, unitSectionMarker),
		}}
	}

	return []Result{{
		Name:    "service unit marker",
		Status:  StatusOK,
		Message: name,
	}}
}

// checkBuildTargets verifies the Makefile defines each required target.
// Each missing target is reported separately.
func checkBuildTargets(dir string) []Result {
	path := filepath.Join(dir, "Makefile")
	// #nosec G304 - path is inside the tree under validation
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Result{{
				Name:    "build targets",
				Status:  StatusSkipped,
				Message: "no Makefile",
			}}
		}
		return []Result{{
			Name:    "build targets",
			Status:  StatusError,
			Message: fmt.Sprintf("cannot read Makefile: %v", err),
		}}
	}

	targets := makefileTargets(string(data))

	var results []Result
	for _, want := range requiredTargets {
		if _, ok := targets[want]; !ok {
			results = append(results, Result{
				Name:    fmt.Sprintf("target %q", want),
				Status:  StatusError,
				Message: "not defined in Makefile",
			})
			continue
		}
		results = append(results, Result{
			Name:   fmt.Sprintf("target %q", want),
			Status: StatusOK,
		})
	}
	return results
}

// makefileTargets extracts the rule names defined in a Makefile.
func makefileTargets(content string) map[string]struct{} {
	targets := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		// Recipe lines and comments cannot define targets.
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		// Variable assignments like FOO := bar are not rules.
		if strings.HasPrefix(line[idx:], ":=") {
			continue
		}
		for _, name := range strings.Fields(line[:idx]) {
			if name == ".PHONY" {
				continue
			}
			targets[name] = struct{}{}
		}
	}
	return targets
}

// checkSystemdSetting inspects wsl.conf for the systemd enable flag. A
// missing flag is only a warning; the distribution still boots without
// systemd.
func checkSystemdSetting(dir string) []Result {
	path := filepath.Join(dir, "wsl.conf")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []Result{{
			Name:    "systemd setting",
			Status:  StatusSkipped,
			Message: "no wsl.conf",
		}}
	}

	f, err := ini.Load(path)
	if err != nil {
		return []Result{{
			Name:    "systemd setting",
			Status:  StatusError,
			Message: fmt.Sprintf("cannot parse wsl.conf: %v", err),
		}}
	}

	enabled, err := f.Section("boot").Key("systemd").Bool()
	if err != nil || !enabled {
		return []Result{{
			Name:    "systemd setting",
			Status:  StatusWarning,
			Message: "boot.systemd is not enabled",
		}}
	}

	return []Result{{
		Name:    "systemd setting",
		Status:  StatusOK,
		Message: "boot.systemd = true",
	}}
}
