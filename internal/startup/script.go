package startup

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/system"
)

// scriptTemplate is the startup dispatch script shipped in the rootfs.
// The environment check is the single hard abort: outside WSL the
// script exits immediately. Individual service starts are degraded to
// warnings when marked best-effort.
const scriptTemplate = `#!/bin/sh
# wslforge startup dispatch - {{.Kind}} profile

if ! grep -qi "{{.Marker}}" {{.VersionFile}}; then
    echo "error: this script must run inside a WSL distribution" >&2
    exit 1
fi
{{range .Actions}}
{{- if .BestEffort}}
if ! systemctl start {{.Name}}; then
    echo "warning: failed to start {{.Name}}" >&2
fi
{{- else}}
systemctl start {{.Name}} || exit 1
{{- end}}
{{end}}
exit 0
`

var scriptTmpl = template.Must(template.New("startup").Parse(scriptTemplate))

// EmitScript renders the dispatch script for a profile. Pure: repeated
// calls produce byte-identical output.
func EmitScript(kind profile.Kind) (string, error) {
	data := struct {
		Kind        profile.Kind
		Marker      string
		VersionFile string
		Actions     []ServiceAction
	}{
		Kind:        kind,
		Marker:      system.WSLMarker,
		VersionFile: system.VersionFile,
		Actions:     DispatchFor(kind),
	}

	var buf strings.Builder
	if err := scriptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render startup script for %s: %w", kind, err)
	}
	return buf.String(), nil
}
