package vfs

import (
	"context"
	"fmt"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// DeleteItem moves an item and its direct children to the recycle bin after
// the user confirms. Protected folders and system files are refused with an
// "Access Denied" alert and the tree is left untouched.
func (m *Manager) DeleteItem(ctx context.Context, dlg dialog.Service, id string) (types.Outcome, error) {
	const op = "delete"

	name, outcome, err := m.gate(ctx, dlg, op, id)
	if err != nil || outcome != "" {
		return outcome, err
	}

	ok, err := dlg.Confirm(ctx, TitleDeleteItem, fmt.Sprintf(msgConfirmDelete, name))
	if err != nil {
		return "", fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return m.outcome(op, types.OutcomeCancelled), nil
	}

	m.mu.Lock()
	if m.find(id) == nil {
		m.mu.Unlock()
		return m.outcome(op, types.OutcomeNotFound), nil
	}
	now := m.now()
	var ids []string
	for _, it := range m.items {
		if it.ID == id || (it.ParentID != nil && *it.ParentID == id) {
			deletedAt := now
			it.IsDeleted = true
			it.DeletedAt = &deletedAt
			ids = append(ids, it.ID)
		}
	}
	m.mu.Unlock()

	m.record(op)
	m.publish(types.EventItemDeleted, ids, nil)
	return m.outcome(op, types.OutcomeApplied), nil
}

// PermanentlyDeleteItem removes an item and its direct children after the
// user confirms. Protected items are refused the same way DeleteItem refuses
// them.
func (m *Manager) PermanentlyDeleteItem(ctx context.Context, dlg dialog.Service, id string) (types.Outcome, error) {
	const op = "permanent_delete"

	name, outcome, err := m.gate(ctx, dlg, op, id)
	if err != nil || outcome != "" {
		return outcome, err
	}

	ok, err := dlg.Confirm(ctx, TitlePermanent, fmt.Sprintf(msgConfirmPermanent, name))
	if err != nil {
		return "", fmt.Errorf("confirm permanent delete: %w", err)
	}
	if !ok {
		return m.outcome(op, types.OutcomeCancelled), nil
	}

	m.mu.Lock()
	if m.find(id) == nil {
		m.mu.Unlock()
		return m.outcome(op, types.OutcomeNotFound), nil
	}
	ids := m.removeWhere(func(it *types.Item) bool {
		return it.ID == id || (it.ParentID != nil && *it.ParentID == id)
	})
	m.mu.Unlock()

	m.record(op)
	m.publish(types.EventItemRemoved, ids, nil)
	return m.outcome(op, types.OutcomeApplied), nil
}

// EmptyRecycleBin removes every soft-deleted item after the user confirms.
// An empty bin returns OutcomeNoop without asking.
func (m *Manager) EmptyRecycleBin(ctx context.Context, dlg dialog.Confirmer) (types.Outcome, error) {
	const op = "empty_recycle_bin"

	m.mu.RLock()
	count := 0
	for _, it := range m.items {
		if it.IsDeleted {
			count++
		}
	}
	m.mu.RUnlock()

	if count == 0 {
		return m.outcome(op, types.OutcomeNoop), nil
	}

	ok, err := dlg.Confirm(ctx, TitleEmptyRecycle, fmt.Sprintf(msgConfirmEmpty, count))
	if err != nil {
		return "", fmt.Errorf("confirm empty recycle bin: %w", err)
	}
	if !ok {
		return m.outcome(op, types.OutcomeCancelled), nil
	}

	m.mu.Lock()
	ids := m.removeWhere(func(it *types.Item) bool { return it.IsDeleted })
	m.mu.Unlock()

	if len(ids) == 0 {
		return m.outcome(op, types.OutcomeNoop), nil
	}
	m.record(op)
	m.publish(types.EventItemRemoved, ids, nil)
	return m.outcome(op, types.OutcomeApplied), nil
}

// gate runs the protection check shared by both deletes. A non-empty
// outcome ends the operation.
func (m *Manager) gate(ctx context.Context, dlg dialog.Alerter, op, id string) (string, types.Outcome, error) {
	m.mu.RLock()
	reason := m.denial(id)
	var name string
	found := false
	if it := m.find(id); it != nil {
		name, found = it.Name, true
	}
	m.mu.RUnlock()

	if reason != "" {
		if err := dlg.Alert(ctx, TitleAccessDenied, reason); err != nil {
			return "", "", fmt.Errorf("alert: %w", err)
		}
		return "", m.outcome(op, types.OutcomeDenied), nil
	}
	if !found {
		return "", m.outcome(op, types.OutcomeNotFound), nil
	}
	return name, "", nil
}
