package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wslforge/wslforge/internal/profile"
)

// ErrWizardCancelled is returned when the user declines the final
// confirmation of the interactive wizard.
var ErrWizardCancelled = errors.New("cancelled by user")

// runCustomWizard gathers custom profile settings interactively. The
// passed options provide the defaults shown at each prompt. Nothing is
// written unless the user confirms the summary.
func runCustomWizard(in io.Reader, out io.Writer, defaults profile.CustomOptions) (profile.CustomOptions, error) {
	reader := bufio.NewReader(in)
	opts := defaults

	fmt.Fprintln(out, "Custom wsl.conf configuration")
	fmt.Fprintln(out, "Press Enter to accept the default shown in brackets.")
	fmt.Fprintln(out)

	var err error
	opts.AutomountEnabled, err = promptBool(reader, out,
		"Mount Windows drives under /mnt?", defaults.AutomountEnabled)
	if err != nil {
		return opts, err
	}

	opts.InteropEnabled, err = promptBool(reader, out,
		"Allow launching Windows executables?", defaults.InteropEnabled)
	if err != nil {
		return opts, err
	}

	opts.AppendWindowsPath, err = promptBool(reader, out,
		"Append the Windows PATH to $PATH?", defaults.AppendWindowsPath)
	if err != nil {
		return opts, err
	}
	// PATH appending rides on interop; without it the setting is inert.
	if !opts.InteropEnabled {
		opts.AppendWindowsPath = false
	}

	opts.SystemdEnabled, err = promptBool(reader, out,
		"Boot with systemd as init?", defaults.SystemdEnabled)
	if err != nil {
		return opts, err
	}

	opts.BootCommand, err = promptString(reader, out,
		"Command to run at boot (empty for none)", defaults.BootCommand)
	if err != nil {
		return opts, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  Automount:           %t\n", opts.AutomountEnabled)
	fmt.Fprintf(out, "  Interop:             %t\n", opts.InteropEnabled)
	fmt.Fprintf(out, "  Append Windows PATH: %t\n", opts.AppendWindowsPath)
	fmt.Fprintf(out, "  Systemd:             %t\n", opts.SystemdEnabled)
	if opts.BootCommand != "" {
		fmt.Fprintf(out, "  Boot command:        %s\n", opts.BootCommand)
	} else {
		fmt.Fprintf(out, "  Boot command:        (none)\n")
	}
	fmt.Fprintln(out)

	confirmed, err := promptBool(reader, out, "Write this configuration?", false)
	if err != nil {
		return opts, err
	}
	if !confirmed {
		return opts, ErrWizardCancelled
	}

	return opts, nil
}

// promptBool asks a yes/no question, returning the default on empty
// input.
func promptBool(reader *bufio.Reader, out io.Writer, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(out, "%s [%s]: ", question, hint)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return def, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimSpace(strings.ToLower(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer 'y' or 'n'.")
		}
	}
}

// promptString asks for a free-form value, returning the default on
// empty input.
func promptString(reader *bufio.Reader, out io.Writer, question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return def, fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}
