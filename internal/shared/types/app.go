package types

import "time"

// App describes an installable application
type App struct {
	ID          string `json:"id" toml:"id"`
	Name        string `json:"name" toml:"name"`
	ComponentID string `json:"componentId" toml:"component"`
	Icon        string `json:"icon" toml:"icon"`
	Category    string `json:"category" toml:"category"`
	IsSystemApp bool   `json:"isSystemApp,omitempty" toml:"system"`
}

// DeletedApp is an entry of the uninstall log
type DeletedApp struct {
	App
	DeletedAt time.Time `json:"deletedAt"`
	Reason    string    `json:"reason"`
}

// PinnedApp is a taskbar shortcut
type PinnedApp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// RegistryStats contains app registry statistics
type RegistryStats struct {
	InstalledApps int `json:"installed_apps"`
	SystemApps    int `json:"system_apps"`
	PinnedApps    int `json:"pinned_apps"`
	DeletedApps   int `json:"deleted_apps"`
}
