package types

import "time"

// WindowPosition represents window position on screen
type WindowPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowSize represents window dimensions
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window represents an open application window
type Window struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	AppID       string         `json:"appId"`
	Icon        string         `json:"icon,omitempty"`
	Position    WindowPosition `json:"position"`
	Size        WindowSize     `json:"size"`
	IsMinimized bool           `json:"isMinimized"`
	IsMaximized bool           `json:"isMaximized"`
	IsActive    bool           `json:"isActive"`
	Props       Props          `json:"props,omitempty"`
	OpenedAt    time.Time      `json:"openedAt"`
}

// Clone returns a deep copy of the window
func (w *Window) Clone() *Window {
	c := *w
	c.Props = w.Props.Clone()
	return &c
}

// WindowStats contains window manager statistics
type WindowStats struct {
	TotalWindows     int     `json:"total_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	MaximizedWindows int     `json:"maximized_windows"`
	ActiveWindowID   *string `json:"active_window_id,omitempty"`
}

// Props is the payload a window hands to the app it hosts
type Props map[string]string

// Known prop keys
const (
	PropFileID         = "fileId"
	PropInitialImageID = "initialImageId"
	PropInitialAudioID = "initialAudioId"
	PropInitialPath    = "initialPath"
)

// Clone copies the map; nil stays nil
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	c := make(Props, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// FileID returns the fileId prop
func (p Props) FileID() string {
	return p[PropFileID]
}

// InitialPath returns the initialPath prop
func (p Props) InitialPath() string {
	return p[PropInitialPath]
}
