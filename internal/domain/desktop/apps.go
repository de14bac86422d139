package desktop

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/vfs"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Dialog titles used by the app flows
const (
	TitleCannotUninstall = "Cannot Uninstall"
	TitleAppRunning      = "App Currently Running"
	TitleUninstall       = "Uninstall Program"
	TitleUninstallDone   = "Uninstall Complete"
	TitleUninstallFailed = "Uninstall Failed"
	TitleReset           = "Reset WebOS"
	TitleResetDone       = "Reset Complete"
	msgSystemApp         = "%s is a system application and cannot be uninstalled."
	msgAppRunning        = "%s is currently running. Do you want to close it and continue with uninstallation?"
	msgConfirmUninstall  = "Are you sure you want to uninstall %s? This will permanently remove the application and all its data from your system."
	msgUninstallDone     = "%s has been uninstalled successfully."
	msgUninstallFailed   = "Failed to uninstall %s. Please try again."
	msgConfirmReset      = "This will restore all default applications and clear any customizations. Are you sure?"
	msgResetDone         = "WebOS has been reset to factory defaults."
)

// InstallApp installs a catalog app and creates its Program Files folder.
// It returns false for unknown or already installed apps.
func (d *Desktop) InstallApp(appID string) (types.App, bool) {
	app, ok := d.Apps.Catalog().Find(appID)
	if !ok || !d.Apps.Install(app) {
		return types.App{}, false
	}
	d.Files.CreateAppFolder(app.Name, app.ID, vfs.IsX86App(app.ID))
	d.logger.Info("App installed", zap.String("app_id", app.ID))
	return app, true
}

// UninstallApp removes a user app after the user confirms. Running windows
// of the app need a second confirmation and are closed first. On success
// the app is unpinned and its Program Files folder removed.
func (d *Desktop) UninstallApp(ctx context.Context, dlg dialog.Service, appID string) (types.Outcome, error) {
	app, ok := d.Apps.Get(appID)
	if !ok {
		return types.OutcomeNotFound, nil
	}
	if app.IsSystemApp {
		if err := dlg.Alert(ctx, TitleCannotUninstall, fmt.Sprintf(msgSystemApp, app.Name)); err != nil {
			return "", fmt.Errorf("alert: %w", err)
		}
		return types.OutcomeDenied, nil
	}

	running := d.runningWindows(app)
	if len(running) > 0 {
		ok, err := dlg.Confirm(ctx, TitleAppRunning, fmt.Sprintf(msgAppRunning, app.Name))
		if err != nil {
			return "", fmt.Errorf("confirm close: %w", err)
		}
		if !ok {
			return types.OutcomeCancelled, nil
		}
		for _, id := range running {
			d.Windows.Close(id)
		}
	}

	ok, err := dlg.Confirm(ctx, TitleUninstall, fmt.Sprintf(msgConfirmUninstall, app.Name))
	if err != nil {
		return "", fmt.Errorf("confirm uninstall: %w", err)
	}
	if !ok {
		return types.OutcomeCancelled, nil
	}

	d.Apps.Unpin(appID)
	d.Files.RemoveAppFolder(appID)

	if !d.Apps.Uninstall(appID) {
		if err := dlg.Alert(ctx, TitleUninstallFailed, fmt.Sprintf(msgUninstallFailed, app.Name)); err != nil {
			return "", fmt.Errorf("alert: %w", err)
		}
		return types.OutcomeNotFound, nil
	}

	d.logger.Info("App uninstalled", zap.String("app_id", appID), zap.Int("closed_windows", len(running)))
	if err := dlg.Alert(ctx, TitleUninstallDone, fmt.Sprintf(msgUninstallDone, app.Name)); err != nil {
		return types.OutcomeApplied, fmt.Errorf("alert: %w", err)
	}
	return types.OutcomeApplied, nil
}

// ResetApps restores the catalog apps after the user confirms
func (d *Desktop) ResetApps(ctx context.Context, dlg dialog.Service) (types.Outcome, error) {
	ok, err := dlg.Confirm(ctx, TitleReset, msgConfirmReset)
	if err != nil {
		return "", fmt.Errorf("confirm reset: %w", err)
	}
	if !ok {
		return types.OutcomeCancelled, nil
	}

	d.Apps.ResetToDefaults()
	d.logger.Info("Apps reset to defaults")
	if err := dlg.Alert(ctx, TitleResetDone, msgResetDone); err != nil {
		return types.OutcomeApplied, fmt.Errorf("alert: %w", err)
	}
	return types.OutcomeApplied, nil
}

// runningWindows matches windows by app id or by the app name appearing
// in the title
func (d *Desktop) runningWindows(app types.App) []string {
	name := strings.ToLower(app.Name)
	var ids []string
	for _, w := range d.Windows.List() {
		if w.AppID == app.ID || strings.Contains(strings.ToLower(w.Title), name) {
			ids = append(ids, w.ID)
		}
	}
	return ids
}
