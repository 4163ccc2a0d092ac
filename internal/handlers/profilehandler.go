package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hues-Apply/profile-sync/internal/profile"
	"github.com/Hues-Apply/profile-sync/internal/services"
)

// ProfileHandler is the HTTP surface over a user's profile session. Each
// endpoint is the server-side equivalent of one UI event handler: edits
// replace store slices directly, save runs the reconciler.
type ProfileHandler struct {
	Sessions *services.SessionService
	Drafts   *services.DraftService
}

func NewProfileHandler(sessions *services.SessionService, drafts *services.DraftService) *ProfileHandler {
	return &ProfileHandler{Sessions: sessions, Drafts: drafts}
}

// bearerToken extracts the bearer token or writes a 401.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return "", false
	}
	return token, true
}

// sectionFromParam maps URL path segments to the canonical section labels.
var sectionFromParam = map[string]string{
	"personal":       profile.SectionPersonal,
	"career-profile": profile.SectionCareer,
	"education":      profile.SectionEducation,
	"experience":     profile.SectionExperience,
	"projects":       profile.SectionProjects,
	"ai":             profile.SectionAI,
}

func sectionParam(c *gin.Context) (string, bool) {
	section, ok := sectionFromParam[c.Param("section")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown profile section: " + c.Param("section")})
		return "", false
	}
	return section, true
}

// GetProfile returns the session's current store snapshot, creating the
// session (and running the initial load) on first sight of this token.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.Snapshot()})
}

// UpdatePersonal replaces the personal info slice wholesale.
func (h *ProfileHandler) UpdatePersonal(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	var req profile.PersonalInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
		store.Personal = req
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) UpdateCareer(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	var req profile.CareerProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
		store.Career = req
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) UpdateAIPreferences(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	var req profile.AIPreferences
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
		store.AIPreferences = req
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddEntry appends a blank temp-id row to a repeating section and returns
// it, so the client knows the generated id.
func (h *ProfileHandler) AddEntry(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}

	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	var entry any
	err := sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
		now := time.Now()
		switch section {
		case profile.SectionEducation:
			entry = store.AddEducation(now)
		case profile.SectionExperience:
			entry = store.AddExperience(now)
		case profile.SectionProjects:
			entry = store.AddProject(now)
		default:
			return errNotRepeating
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": section + " is not a repeating section"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": entry})
}

// UpdateEntry replaces one repeating-section row at an index. The body is
// the full local-shape entry, id included; no validation beyond JSON shape.
func (h *ProfileHandler) UpdateEntry(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry index must be an integer"})
		return
	}

	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)

	switch section {
	case profile.SectionEducation:
		var req profile.Education
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
		err = sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
			if index < 0 || index >= len(store.Education) {
				return errIndexOutOfRange
			}
			store.Education[index] = req
			return nil
		})
	case profile.SectionExperience:
		var req profile.Experience
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
		err = sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
			if index < 0 || index >= len(store.Experience) {
				return errIndexOutOfRange
			}
			store.Experience[index] = req
			return nil
		})
	case profile.SectionProjects:
		var req profile.Project
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
		err = sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
			if index < 0 || index >= len(store.Projects) {
				return errIndexOutOfRange
			}
			store.Projects[index] = req
			return nil
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": section + " is not a repeating section"})
		return
	}

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteEntry removes one row: remote delete first for persisted rows,
// local-only otherwise. A failed remote delete blocks the local removal.
func (h *ProfileHandler) DeleteEntry(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry index must be an integer"})
		return
	}

	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	ctx := c.Request.Context()

	err = sess.With(func(store *profile.Store, rec *profile.Reconciler) error {
		switch section {
		case profile.SectionEducation:
			if index < 0 || index >= len(store.Education) {
				return errIndexOutOfRange
			}
			return rec.DeleteEducationEntry(ctx, store.Education[index].ID, index)
		case profile.SectionExperience:
			if index < 0 || index >= len(store.Experience) {
				return errIndexOutOfRange
			}
			return rec.DeleteExperienceEntry(ctx, store.Experience[index].ID, index)
		case profile.SectionProjects:
			if index < 0 || index >= len(store.Projects) {
				return errIndexOutOfRange
			}
			return rec.DeleteProjectEntry(ctx, store.Projects[index].ID, index)
		default:
			return errNotRepeating
		}
	})
	if err == errIndexOutOfRange || err == errNotRepeating {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete entry: " + err.Error()})
		return
	}

	h.Sessions.LogEvent(sess.UserKey, section, "DELETE_ENTRY", "entry removed at index "+strconv.Itoa(index))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Save persists one section, identified by its canonical label, then
// returns the reloaded snapshot. Save failures keep local edits intact so
// the user can retry without re-entering data.
func (h *ProfileHandler) Save(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	var req struct {
		Section string `json:"section" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	ctx := c.Request.Context()

	err := sess.With(func(_ *profile.Store, rec *profile.Reconciler) error {
		return rec.Save(ctx, req.Section)
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save profile: " + err.Error()})
		return
	}

	h.Sessions.LogEvent(sess.UserKey, req.Section, "SAVE", "section saved and profile reloaded")
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.Snapshot()})
}

// Reload re-fetches the whole profile. A failed fetch is not an HTTP
// error: it lands in the store's error field and renders as a retryable
// banner, with the previous local state untouched.
func (h *ProfileHandler) Reload(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	sess := h.Sessions.GetOrCreate(c.Request.Context(), token)
	ctx := c.Request.Context()

	sess.With(func(_ *profile.Store, rec *profile.Reconciler) error {
		return rec.Load(ctx)
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.Snapshot()})
}

// SaveDraft stores the raw local-shape JSON for one section.
func (h *ProfileHandler) SaveDraft(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft body is required"})
		return
	}

	if err := h.Drafts.SaveDraft(services.UserKey(token), section, string(payload)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) ListDrafts(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	drafts, err := h.Drafts.GetDrafts(services.UserKey(token))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": drafts})
}

func (h *ProfileHandler) DeleteDraft(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	if err := h.Drafts.DeleteDraft(services.UserKey(token), section); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
