package services

import (
	"context"
	"strings"
	"testing"

	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	domainservices "lifemap-backend/domain/services"
	"lifemap-backend/infrastructure/persistence/memory"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUser = "user-1"

func newTestContactService() (*ContactService, *memory.ContactRepository) {
	repo := memory.NewContactRepository()
	svc := NewContactService(repo, domainconfig.DefaultDomainConfig(), zap.NewNop())
	return svc, repo
}

func TestContactService_StateLifecycle(t *testing.T) {
	svc, _ := newTestContactService()
	ctx := context.Background()

	assert.Equal(t, StateUninitialized, svc.State(testUser))

	_, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, StateReady, svc.State(testUser))

	svc.Logout(testUser)
	assert.Equal(t, StateUninitialized, svc.State(testUser))
}

func TestContactService_AddAndList(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	contact := entities.NewContact(entities.ContactFields{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{contact}))

	listed, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Jane", listed[0].FirstName())
	assert.Equal(t, 1, repo.SaveCount[testUser])
}

func TestContactService_UpdateNotFound(t *testing.T) {
	svc, _ := newTestContactService()

	_, err := svc.Update(context.Background(), testUser, "missing", entities.ContactPatch{FirstName: "X"})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestContactService_UpdateManyWritesOnce(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	first := entities.NewContact(entities.ContactFields{FirstName: "Ada", LastName: "A"})
	second := entities.NewContact(entities.ContactFields{FirstName: "Ben", LastName: "B"})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{first, second}))
	writesBefore := repo.SaveCount[testUser]

	updates := []domainservices.Update{
		{ID: first.ID(), Patch: entities.ContactPatch{PhoneNumber: "111"}},
		{ID: second.ID(), Patch: entities.ContactPatch{PhoneNumber: "222"}},
	}
	require.NoError(t, svc.UpdateMany(ctx, testUser, updates))

	assert.Equal(t, writesBefore+1, repo.SaveCount[testUser], "batch update must persist exactly once")

	listed, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "111", listed[0].PhoneNumber())
	assert.Equal(t, "222", listed[1].PhoneNumber())
}

func TestContactService_ImportSummaryAndSingleWrite(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	existing := entities.NewContact(entities.ContactFields{
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: "jane@example.com",
	})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{existing}))
	writesBefore := repo.SaveCount[testUser]

	candidates := []domainservices.Candidate{
		{Fields: entities.ContactFields{EmailAddress: "jane@example.com", PhoneNumber: "555"}},
		{Fields: entities.ContactFields{FirstName: "Sam", LastName: "Stone"}},
	}

	summary, err := svc.Import(ctx, testUser, candidates)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Updated: 1, Inserted: 1, Total: 2}, summary)
	assert.Equal(t, writesBefore+1, repo.SaveCount[testUser], "import must persist exactly once")
}

func TestContactService_ImportEmptyBatchIsNoOp(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	existing := entities.NewContact(entities.ContactFields{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{existing}))
	writesBefore := repo.SaveCount[testUser]

	summary, err := svc.Import(ctx, testUser, nil)
	require.NoError(t, err, "an empty export re-imported must succeed")
	assert.Equal(t, ImportSummary{Updated: 0, Inserted: 0, Total: 1}, summary)
	assert.Equal(t, writesBefore, repo.SaveCount[testUser], "no-op import must not persist")
}

func TestContactService_ImportBatchTooLarge(t *testing.T) {
	svc, _ := newTestContactService()

	tooMany := make([]domainservices.Candidate, domainconfig.DefaultDomainConfig().MaxImportBatchSize+1)
	_, err := svc.Import(context.Background(), testUser, tooMany)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestContactService_FieldLimits(t *testing.T) {
	svc, _ := newTestContactService()
	ctx := context.Background()
	cfg := domainconfig.DefaultDomainConfig()

	t.Run("oversized field is rejected on add", func(t *testing.T) {
		long := strings.Repeat("x", cfg.MaxFieldLength+1)
		err := svc.Add(ctx, testUser, []*entities.Contact{
			entities.NewContact(entities.ContactFields{FirstName: long}),
		})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("oversized notes are rejected on update", func(t *testing.T) {
		contact := entities.NewContact(entities.ContactFields{FirstName: "Jane", LastName: "Doe"})
		require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{contact}))

		longNotes := strings.Repeat("n", cfg.MaxNotesLength+1)
		_, err := svc.Update(ctx, testUser, contact.ID().String(), entities.ContactPatch{
			Notes: valueobjects.NewNotes(longNotes),
		})
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestContactService_PersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	repo.FailSaves = true
	contact := entities.NewContact(entities.ContactFields{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{contact}),
		"a failed snapshot write must not fail the operation")

	listed, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestContactService_LogoutDiscardsUnpersistedState(t *testing.T) {
	svc, repo := newTestContactService()
	ctx := context.Background()

	repo.FailSaves = true
	contact := entities.NewContact(entities.ContactFields{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{contact}))

	svc.Logout(testUser)
	repo.FailSaves = false

	listed, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, listed, "logout reloads from the last persisted snapshot")
}

func TestContactService_NotesSurviveUpdateWithoutNotes(t *testing.T) {
	svc, _ := newTestContactService()
	ctx := context.Background()

	contact := entities.NewContact(entities.ContactFields{
		FirstName: "Jane",
		LastName:  "Doe",
		Notes:     valueobjects.NewNotes("keep me"),
	})
	require.NoError(t, svc.Add(ctx, testUser, []*entities.Contact{contact}))

	updated, err := svc.Update(ctx, testUser, contact.ID().String(), entities.ContactPatch{
		PhoneNumber: "555",
		Notes:       valueobjects.AbsentNotes(),
	})
	require.NoError(t, err)
	assert.Equal(t, "keep me", updated.Notes().Value())

	cleared, err := svc.Update(ctx, testUser, contact.ID().String(), entities.ContactPatch{
		Notes: valueobjects.EmptyNotes(),
	})
	require.NoError(t, err)
	assert.False(t, cleared.Notes().HasContent())
}
