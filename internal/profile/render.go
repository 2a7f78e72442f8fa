package profile

import (
	"fmt"
	"strings"
	"text/template"
)

// confTemplate is the wsl.conf document shape. Section and key names
// are fixed and case-sensitive; the WSL runtime parses this verbatim.
const confTemplate = `# wsl.conf - {{.Kind}} profile
# {{.Description}}

[automount]
enabled = {{.Automount.Enabled}}
{{- if .Automount.Options}}
options = "{{.Automount.Options}}"
{{- else}}
# options = "metadata"
{{- end}}
mountFsTab = {{.Automount.MountFsTab}}

[network]
generateHosts = {{.Network.GenerateHosts}}
generateResolvConf = {{.Network.GenerateResolvConf}}

[interop]
enabled = {{.Interop.Enabled}}
appendWindowsPath = {{.Interop.AppendWindowsPath}}

[user]
{{- if .User.Default}}
default = {{.User.Default}}
{{- else}}
# default = arch
{{- end}}

[boot]
systemd = {{.Boot.Systemd}}
{{- if .Boot.Command}}
command = "{{escapeCommand .Boot.Command}}"
{{- end}}
`

var confTmpl = template.Must(template.New("wslconf").Funcs(template.FuncMap{
	"escapeCommand": EscapeCommand,
}).Parse(confTemplate))

// EscapeCommand makes a boot command safe to embed in a double-quoted
// wsl.conf value by escaping backslashes and embedded double quotes.
func EscapeCommand(cmd string) string {
	cmd = strings.ReplaceAll(cmd, `\`, `\\`)
	cmd = strings.ReplaceAll(cmd, `"`, `\"`)
	return cmd
}

// Render serializes a profile into wsl.conf text. It is pure: the same
// profile always renders to byte-identical output, and nothing is
// written to disk.
func Render(p Profile) (string, error) {
	var buf strings.Builder
	if err := confTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to render profile %s: %w", p.Kind, err)
	}
	return buf.String(), nil
}
