package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Hues-Apply/profile-sync/internal/models"
)

// newTestDB opens an in-memory sqlite database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SectionDraft{}, &models.SyncSession{}, &models.SyncEvent{}))
	return db
}

func TestSaveDraftUpsertsPerUserAndSection(t *testing.T) {
	svc := NewDraftService(newTestDB(t))

	require.NoError(t, svc.SaveDraft("user-a", "Education", `{"degree":"BSc"}`))
	require.NoError(t, svc.SaveDraft("user-a", "Education", `{"degree":"MSc"}`))
	require.NoError(t, svc.SaveDraft("user-a", "Projects", `{"title":"Compiler"}`))

	drafts, err := svc.GetDrafts("user-a")
	require.NoError(t, err)
	require.Len(t, drafts, 2, "re-saving a section must overwrite, not append")

	byLabel := map[string]string{}
	for _, d := range drafts {
		byLabel[d.Section] = d.Payload
	}
	assert.Equal(t, `{"degree":"MSc"}`, byLabel["Education"])
	assert.Equal(t, `{"title":"Compiler"}`, byLabel["Projects"])
}

func TestGetDraftsScopedToUserAndOrderedByRecency(t *testing.T) {
	svc := NewDraftService(newTestDB(t))

	require.NoError(t, svc.SaveDraft("user-a", "Education", `{}`))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.SaveDraft("user-a", "Experience", `{}`))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.SaveDraft("user-a", "Education", `{"v":2}`))
	require.NoError(t, svc.SaveDraft("user-b", "Projects", `{}`))

	drafts, err := svc.GetDrafts("user-a")
	require.NoError(t, err)
	require.Len(t, drafts, 2, "another user's drafts must not leak")
	assert.Equal(t, "Education", drafts[0].Section, "re-saved draft moves to the front")
	assert.Equal(t, "Experience", drafts[1].Section)

	empty, err := svc.GetDrafts("user-c")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteDraftMissingIsOK(t *testing.T) {
	svc := NewDraftService(newTestDB(t))

	require.NoError(t, svc.DeleteDraft("user-a", "Education"))

	require.NoError(t, svc.SaveDraft("user-a", "Education", `{}`))
	require.NoError(t, svc.DeleteDraft("user-a", "Education"))

	drafts, err := svc.GetDrafts("user-a")
	require.NoError(t, err)
	assert.Empty(t, drafts)

	// Deleting twice is just as fine.
	require.NoError(t, svc.DeleteDraft("user-a", "Education"))
}

func TestSaveDraftAfterDeleteReusesSectionSlot(t *testing.T) {
	svc := NewDraftService(newTestDB(t))

	require.NoError(t, svc.SaveDraft("user-a", "Education", `{"v":1}`))
	require.NoError(t, svc.DeleteDraft("user-a", "Education"))
	require.NoError(t, svc.SaveDraft("user-a", "Education", `{"v":2}`))

	drafts, err := svc.GetDrafts("user-a")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, `{"v":2}`, drafts[0].Payload)
}
