// Package launch maps application ids and file-system items to the window
// that should host them.
package launch

import (
	"regexp"
	"strings"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Well-known app ids used by the open-with rules
const (
	AppFileExplorer = "file-explorer"
	AppImageViewer  = "image-viewer"
	AppAudioPlayer  = "audio-player"
	AppTextEditor   = "text-editor"
)

// ShortcutPrefix marks a file whose content launches an app
const ShortcutPrefix = "shortcut:"

var (
	imageName = regexp.MustCompile(`\.(jpg|jpeg|png|gif|bmp|webp)$`)
	audioName = regexp.MustCompile(`\.(mp3|wav|ogg|m4a|aac|flac)$`)

	viewerPosition = types.WindowPosition{X: 100, Y: 100}
)

// Target is everything needed to open a window for an app
type Target struct {
	AppID       string                `json:"appId"`
	ComponentID string                `json:"componentId,omitempty"`
	Title       string                `json:"title"`
	Icon        string                `json:"icon,omitempty"`
	Position    *types.WindowPosition `json:"position,omitempty"`
	Size        *types.WindowSize     `json:"size,omitempty"`
	Props       types.Props           `json:"props,omitempty"`
	Resolved    bool                  `json:"resolved"`
}

// Apps is the registry view the bridge needs
type Apps interface {
	Get(id string) (types.App, bool)
	Component(id string) (string, bool)
}

// Bridge resolves app ids against the installed apps
type Bridge struct {
	apps Apps
}

// NewBridge creates a bridge over apps
func NewBridge(apps Apps) *Bridge {
	return &Bridge{apps: apps}
}

// Resolve returns the target for an installed app with a known component.
// When resolution fails the returned target still names the app so the
// caller can open a placeholder window.
func (b *Bridge) Resolve(appID string) (Target, bool) {
	t := Target{AppID: appID, Title: appID}
	app, ok := b.apps.Get(appID)
	if !ok {
		return t, false
	}
	t.Title, t.Icon = app.Name, app.Icon

	comp, ok := b.apps.Component(appID)
	if !ok {
		return t, false
	}
	t.ComponentID = comp
	t.Resolved = true
	return t, true
}

// ForItem picks the app that opens item:
//   - folders open in the file explorer at that folder
//   - "shortcut:<appId>" content launches that app
//   - images and audio open in their viewers
//   - anything else opens in the text editor
func (b *Bridge) ForItem(item types.Item) Target {
	if item.IsFolder() {
		return b.with(AppFileExplorer, "File Explorer", "📁", nil, nil,
			types.Props{types.PropInitialPath: item.ID})
	}

	if appID, ok := ShortcutTarget(item.Content); ok {
		t, _ := b.Resolve(appID)
		return t
	}

	name := strings.ToLower(item.Name)
	pos := viewerPosition
	switch {
	case strings.HasPrefix(item.Content, "data:image/") || imageName.MatchString(name):
		return b.with(AppImageViewer, "Image Viewer", "🖼️", &pos, &types.WindowSize{Width: 900, Height: 700},
			types.Props{types.PropInitialImageID: item.ID})
	case strings.HasPrefix(item.Content, "data:audio/") || audioName.MatchString(name):
		return b.with(AppAudioPlayer, "Audio Player", "🎵", &pos, &types.WindowSize{Width: 800, Height: 600},
			types.Props{types.PropInitialAudioID: item.ID})
	default:
		return b.with(AppTextEditor, item.Name+" - Text Editor", "📝", &pos, &types.WindowSize{Width: 800, Height: 600},
			types.Props{types.PropFileID: item.ID})
	}
}

// ShortcutTarget extracts the app id from shortcut content
func ShortcutTarget(content string) (string, bool) {
	appID, ok := strings.CutPrefix(content, ShortcutPrefix)
	appID = strings.TrimSpace(appID)
	return appID, ok && appID != ""
}

func (b *Bridge) with(appID, title, icon string, pos *types.WindowPosition, size *types.WindowSize, props types.Props) Target {
	t, _ := b.Resolve(appID)
	t.Title = title
	t.Icon = icon
	t.Position = pos
	t.Size = size
	t.Props = props
	return t
}
