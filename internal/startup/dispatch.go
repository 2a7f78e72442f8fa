// Package startup maps configuration profiles to the services started
// when the distribution boots, and emits the dispatch script shipped
// inside the rootfs.
package startup

import "github.com/wslforge/wslforge/internal/profile"

// ServiceAction is one service start in the dispatch sequence. A
// best-effort action logs its failure and never aborts the dispatch.
type ServiceAction struct {
	Name       string `json:"name"`
	BestEffort bool   `json:"best_effort"`
}

// DispatchFor returns the ordered service-start actions for a profile.
// The switch is exhaustive over the closed profile enumeration;
// profiles without background services return nil.
func DispatchFor(kind profile.Kind) []ServiceAction {
	switch kind {
	case profile.KindDevelopment:
		return []ServiceAction{
			{Name: "docker", BestEffort: true},
			{Name: "sshd", BestEffort: true},
		}
	case profile.KindServer:
		return []ServiceAction{
			{Name: "sshd", BestEffort: true},
			{Name: "cronie", BestEffort: true},
		}
	case profile.KindGaming, profile.KindMinimal, profile.KindDesktop, profile.KindCustom:
		return nil
	default:
		return nil
	}
}
