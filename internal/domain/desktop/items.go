package desktop

import (
	"context"
	"fmt"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// OpenItem opens an item in the app the launch bridge picks for it.
// Protected system files are refused with an alert.
func (d *Desktop) OpenItem(ctx context.Context, dlg dialog.Alerter, id string) (*types.Window, types.Outcome, error) {
	outcome, err := d.Files.CheckOpen(ctx, dlg, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}

	item, ok := d.Files.GetItem(id)
	if !ok {
		return nil, types.OutcomeNotFound, nil
	}
	return d.open(d.Bridge.ForItem(item)), types.OutcomeApplied, nil
}

// NewFolder asks for a name and creates a folder under parentID
func (d *Desktop) NewFolder(ctx context.Context, dlg dialog.Prompter, parentID *string) (*types.Item, types.Outcome, error) {
	name, outcome, err := d.askName(ctx, dlg, "New Folder", "Enter folder name:", "New Folder")
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	item := d.Files.CreateFolder(name, parentID)
	return &item, outcome, nil
}

// NewTextFile asks for a name and creates an empty file under parentID
func (d *Desktop) NewTextFile(ctx context.Context, dlg dialog.Prompter, parentID *string) (*types.Item, types.Outcome, error) {
	name, outcome, err := d.askName(ctx, dlg, "New File", "Enter file name:", "New File.txt")
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	item := d.Files.CreateFile(name, "", parentID)
	return &item, outcome, nil
}

// Rename asks for a new name for id
func (d *Desktop) Rename(ctx context.Context, dlg dialog.Prompter, id string) (types.Outcome, error) {
	item, ok := d.Files.GetItem(id)
	if !ok {
		return types.OutcomeNotFound, nil
	}

	name, outcome, err := d.askName(ctx, dlg, "Rename Item", fmt.Sprintf(`Enter new name for "%s":`, item.Name), item.Name)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	if !d.Files.RenameItem(id, name) {
		return types.OutcomeNotFound, nil
	}
	return types.OutcomeApplied, nil
}

// askName prompts for a name. Cancelling or entering nothing usable ends
// the flow with OutcomeCancelled.
func (d *Desktop) askName(ctx context.Context, dlg dialog.Prompter, title, message, placeholder string) (string, types.Outcome, error) {
	value, ok, err := dlg.Prompt(ctx, title, message, placeholder, "")
	if err != nil {
		return "", "", fmt.Errorf("prompt %s: %w", title, err)
	}
	name := utils.SanitizeName(value)
	if !ok || name == "" {
		return "", types.OutcomeCancelled, nil
	}
	if utils.ValidateName(name, "name") != nil {
		return "", types.OutcomeDenied, nil
	}
	return name, types.OutcomeApplied, nil
}
