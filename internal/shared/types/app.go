package types

// LaunchFunc produces a window for an application. Invoked by the
// registry on open; must not be called while holding registry locks.
type LaunchFunc func() (*Window, error)

// Registration holds metadata and the launch callback for one
// installed application. Re-registering the same ID overwrites the
// previous entry, last writer wins.
type Registration struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Icon           string     `json:"icon,omitempty"`
	Category       string     `json:"category,omitempty"`
	SingleInstance bool       `json:"single_instance"`
	Launch         LaunchFunc `json:"-"`
}

// AppInfo is the externally visible view of a registration.
type AppInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon,omitempty"`
	Category       string `json:"category,omitempty"`
	SingleInstance bool   `json:"single_instance"`
	Running        bool   `json:"running"`
}

// RegistryStats contains app registry statistics.
type RegistryStats struct {
	TotalApps        int `json:"total_apps"`
	RunningInstances int `json:"running_instances"`
	LaunchFailures   int `json:"launch_failures"`
}
