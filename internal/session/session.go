// Package session wires a workspace together: catalog, answer store,
// orchestrator, and profile projection for one interactive run.
package session

import (
	"fmt"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
	"github.com/groundworkhq/groundwork/internal/intake"
	"github.com/groundworkhq/groundwork/internal/profile"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// Session holds everything one run of the wizard or a chat tool needs.
type Session struct {
	Root      string
	Catalog   *catalog.Catalog
	Store     *answers.Store
	Orch      *intake.Orchestrator
	Projector *profile.Projector
}

// Open locates the workspace from the working directory and assembles a
// session over it.
func Open() (*Session, error) {
	root, err := workspace.Root()
	if err != nil {
		return nil, err
	}
	return OpenAt(root)
}

// OpenAt assembles a session over an explicit workspace root.
func OpenAt(root string) (*Session, error) {
	cat, err := catalog.Resolve(root)
	if err != nil {
		return nil, err
	}

	projector, err := profile.NewProjector(cat)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cat.ID, err)
	}

	store := answers.NewStore(workspace.AnswersPath(root))
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Session{
		Root:      root,
		Catalog:   cat,
		Store:     store,
		Orch:      intake.New(cat, store, state),
		Projector: projector,
	}, nil
}

// ResumeStage returns the stage a reopened session should refresh: the
// persisted active stage, or core for a fresh workspace.
func (s *Session) ResumeStage() catalog.Stage {
	if stage := s.Orch.Stage(); stage != "" {
		return stage
	}
	return catalog.StageCore
}

// RebuildProfile re-projects the answer state into the profile file,
// carrying forward custom-patch provenance from the previous profile.
func (s *Session) RebuildProfile() (*profile.Profile, error) {
	path := workspace.ProfilePath(s.Root)
	prev, err := profile.Load(path)
	if err != nil {
		return nil, err
	}

	rebuilt := s.Projector.Rebuild(s.Orch.State(), prev)
	if err := profile.Save(path, rebuilt); err != nil {
		return nil, err
	}
	return rebuilt, nil
}
