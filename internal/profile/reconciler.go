package profile

import (
	"context"
	"fmt"
	"log"

	"github.com/Hues-Apply/profile-sync/internal/api"
)

// Reconciler owns load/save orchestration between the Store and the Remote
// Profile API. Saves operate on exactly one section at a time; repeating
// sections walk every entry sequentially and commit the resulting slice in
// a single replacement, so an error partway through never leaves the store
// half-mutated.
type Reconciler struct {
	Client *api.Client
	Store  *Store
}

func NewReconciler(client *api.Client, store *Store) *Reconciler {
	return &Reconciler{Client: client, Store: store}
}

// Load fetches the comprehensive profile and replaces every local section.
// On failure the error lands in Store.Error and the existing local state is
// left untouched, so the UI can offer a retry without losing anything.
func (r *Reconciler) Load(ctx context.Context) error {
	r.Store.Loading = true
	defer func() { r.Store.Loading = false }()

	resp, err := r.Client.GetComprehensiveProfile(ctx)
	if err != nil {
		r.Store.Error = err.Error()
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if !resp.Success {
		r.Store.Error = "profile fetch was not successful"
		return fmt.Errorf("failed to load profile: backend reported success=false")
	}

	r.Store.Populate(&resp.Data)
	return nil
}

// Save persists one section, identified by its label. Unknown labels are a
// silent no-op. After a successful save the whole profile is re-fetched so
// local state reflects server-assigned ids and any server-side
// normalization. Save errors propagate to the caller; in-progress local
// edits are deliberately NOT rolled back. A failed re-fetch does NOT
// propagate: the section is already committed, and Load has put the error
// in Store.Error where the client surfaces it as a retryable condition.
func (r *Reconciler) Save(ctx context.Context, section string) error {
	r.Store.Loading = true
	defer func() { r.Store.Loading = false }()

	var err error
	switch section {
	case SectionPersonal:
		err = r.savePersonal(ctx)
	case SectionCareer:
		err = r.saveCareer(ctx)
	case SectionEducation:
		err = r.saveEducation(ctx)
	case SectionExperience:
		err = r.saveExperience(ctx)
	case SectionProjects:
		err = r.saveProjects(ctx)
	case SectionAI:
		err = r.saveAIPreferences(ctx)
	default:
		log.Printf("⚠️ Save requested for unknown section %q, ignoring", section)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to save %s section: %w", section, err)
	}

	log.Printf("✅ Saved %s section, reloading profile...", section)
	if err := r.Load(ctx); err != nil {
		log.Printf("⚠️ Post-save profile reload failed: %v", err)
	}
	return nil
}

func (r *Reconciler) savePersonal(ctx context.Context) error {
	// Whole section every time, no per-field diffing.
	return r.Client.UpsertPersonalInfo(ctx, personalToWire(r.Store.Personal))
}

func (r *Reconciler) saveCareer(ctx context.Context) error {
	return r.Client.UpsertCareerProfile(ctx, careerToWire(r.Store.Career))
}

func (r *Reconciler) saveEducation(ctx context.Context) error {
	next := make([]Education, len(r.Store.Education))
	copy(next, r.Store.Education)

	var firstErr error
	for i, entry := range next {
		switch entry.ID.Class() {
		case ClassUnsaved:
			if entry.blank() {
				// Never-touched placeholder row, nothing to persist.
				continue
			}
			id, err := r.Client.CreateEducation(ctx, educationToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPending:
			id, err := r.Client.CreateEducation(ctx, educationToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPersisted:
			serverID, _ := entry.ID.ServerID()
			if err := r.Client.UpdateEducation(ctx, serverID, educationToWire(entry)); err != nil {
				firstErr = err
			}
		case ClassUnknown:
			log.Printf("⚠️ Education entry %d has unrecognized id %q, skipping", i, entry.ID)
		}
		if firstErr != nil {
			break
		}
	}

	// One atomic replacement: entries created before a failure keep their
	// promoted ids, so a retry updates them instead of duplicating.
	r.Store.Education = next
	return firstErr
}

func (r *Reconciler) saveExperience(ctx context.Context) error {
	next := make([]Experience, len(r.Store.Experience))
	copy(next, r.Store.Experience)

	var firstErr error
	for i, entry := range next {
		switch entry.ID.Class() {
		case ClassUnsaved:
			if entry.blank() {
				continue
			}
			id, err := r.Client.CreateExperience(ctx, experienceToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPending:
			id, err := r.Client.CreateExperience(ctx, experienceToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPersisted:
			serverID, _ := entry.ID.ServerID()
			if err := r.Client.UpdateExperience(ctx, serverID, experienceToWire(entry)); err != nil {
				firstErr = err
			}
		case ClassUnknown:
			log.Printf("⚠️ Experience entry %d has unrecognized id %q, skipping", i, entry.ID)
		}
		if firstErr != nil {
			break
		}
	}

	r.Store.Experience = next
	return firstErr
}

func (r *Reconciler) saveProjects(ctx context.Context) error {
	next := make([]Project, len(r.Store.Projects))
	copy(next, r.Store.Projects)

	var firstErr error
	for i, entry := range next {
		switch entry.ID.Class() {
		case ClassUnsaved:
			if entry.blank() {
				continue
			}
			id, err := r.Client.CreateProject(ctx, projectToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPending:
			id, err := r.Client.CreateProject(ctx, projectToWire(entry))
			if err != nil {
				firstErr = err
			} else {
				next[i].ID = Persisted(id)
			}
		case ClassPersisted:
			serverID, _ := entry.ID.ServerID()
			if err := r.Client.UpdateProject(ctx, serverID, projectToWire(entry)); err != nil {
				firstErr = err
			}
		case ClassUnknown:
			log.Printf("⚠️ Project entry %d has unrecognized id %q, skipping", i, entry.ID)
		}
		if firstErr != nil {
			break
		}
	}

	r.Store.Projects = next
	return firstErr
}

func (r *Reconciler) saveAIPreferences(ctx context.Context) error {
	prefs := r.Store.AIPreferences
	if err := r.Client.UpsertOpportunitiesInterest(ctx, interestsToWire(prefs.Opportunities)); err != nil {
		return err
	}
	return r.Client.UpsertRecommendationPriority(ctx, prioritiesToWire(prefs.PrioritizeBy, prefs.SalaryExpectation))
}

// DeleteEducationEntry removes one entry. Persisted rows are deleted
// remotely first; a remote failure blocks the local removal so the UI
// never shows a row gone that the backend still has. Placeholder and
// pending rows are local-only.
func (r *Reconciler) DeleteEducationEntry(ctx context.Context, id EntryID, index int) error {
	if serverID, ok := id.ServerID(); ok {
		if err := r.Client.DeleteEducation(ctx, serverID); err != nil {
			return fmt.Errorf("failed to delete education entry: %w", err)
		}
	}
	r.Store.RemoveEducationAt(index)
	return nil
}

func (r *Reconciler) DeleteExperienceEntry(ctx context.Context, id EntryID, index int) error {
	if serverID, ok := id.ServerID(); ok {
		if err := r.Client.DeleteExperience(ctx, serverID); err != nil {
			return fmt.Errorf("failed to delete experience entry: %w", err)
		}
	}
	r.Store.RemoveExperienceAt(index)
	return nil
}

func (r *Reconciler) DeleteProjectEntry(ctx context.Context, id EntryID, index int) error {
	if serverID, ok := id.ServerID(); ok {
		if err := r.Client.DeleteProject(ctx, serverID); err != nil {
			return fmt.Errorf("failed to delete project entry: %w", err)
		}
	}
	r.Store.RemoveProjectAt(index)
	return nil
}
