// Package file provides file-based persistence for drafts and session
// snapshots, one JSON document per entity.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/session"
)

// Persistence implements persistence.Persistence on the local file system.
type Persistence struct {
	root string
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix on root is stripped so database-URL config works.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Drafts loads every stored draft.
func (fp *Persistence) Drafts(ctx context.Context) ([]*models.WorkflowDraft, error) {
	dir := os.DirFS(path.Join(fp.root, "drafts"))

	jsonFiles, err := fs.Glob(dir, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list draft files: %w", err)
	}

	drafts := make([]*models.WorkflowDraft, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		draft, err := fp.DraftByID(ctx, strings.TrimSuffix(file, ".json"))
		if err != nil {
			return nil, err
		}

		if draft != nil {
			drafts = append(drafts, draft)
		}
	}

	return drafts, nil
}

// DraftByID loads one draft. Returns ErrDraftNotFound when no file exists.
func (fp *Persistence) DraftByID(_ context.Context, id string) (*models.WorkflowDraft, error) {
	filePath := filepath.Clean(path.Join(fp.root, "drafts", id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.ErrDraftNotFound
		}

		return nil, fmt.Errorf("failed to fetch draft %s: %w", id, err)
	}

	var draft models.WorkflowDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft %s: %w", id, err)
	}

	return &draft, nil
}

// SaveDraft writes one draft as an indented JSON document.
func (fp *Persistence) SaveDraft(_ context.Context, draft *models.WorkflowDraft) error {
	dir := path.Join(fp.root, "drafts")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create drafts directory: %w", err)
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft %s: %w", draft.ID, err)
	}

	return os.WriteFile(path.Join(dir, draft.ID+".json"), data, 0600)
}

// DeleteDraft removes a draft file. Deleting a missing draft is not an error.
func (fp *Persistence) DeleteDraft(_ context.Context, id string) error {
	err := os.Remove(path.Join(fp.root, "drafts", id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}

	return nil
}

// SessionByID loads one session snapshot.
func (fp *Persistence) SessionByID(_ context.Context, id string) (*session.Store, error) {
	filePath := filepath.Clean(path.Join(fp.root, "sessions", id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}

	var store session.Store
	if err := json.Unmarshal(body, &store); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}

	return &store, nil
}

// SaveSession writes one session snapshot.
func (fp *Persistence) SaveSession(_ context.Context, store *session.Store) error {
	dir := path.Join(fp.root, "sessions")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", store.ID, err)
	}

	return os.WriteFile(path.Join(dir, store.ID+".json"), data, 0600)
}
