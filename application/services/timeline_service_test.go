package services

import (
	"context"
	"strings"
	"testing"

	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	"lifemap-backend/infrastructure/persistence/memory"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTimelineService() (*TimelineService, *memory.TimelineRepository) {
	repo := memory.NewTimelineRepository()
	svc := NewTimelineService(repo, domainconfig.DefaultDomainConfig(), zap.NewNop())
	return svc, repo
}

func mustEvent(t *testing.T, monthYear, professional, personal, geographic string) *entities.TimelineEvent {
	t.Helper()
	my, err := valueobjects.ParseMonthYear(monthYear)
	require.NoError(t, err)
	event, err := entities.NewTimelineEvent(my, professional, personal, geographic)
	require.NoError(t, err)
	return event
}

func TestTimelineService_AddKeepsEventsSorted(t *testing.T) {
	svc, _ := newTestTimelineService()
	ctx := context.Background()

	later := mustEvent(t, "06/2021", "promoted", "", "")
	earlier := mustEvent(t, "01/2019", "hired", "", "")
	middle := mustEvent(t, "03/2020", "", "", "moved to Lisbon")

	require.NoError(t, svc.Add(ctx, testUser, later))
	require.NoError(t, svc.Add(ctx, testUser, earlier, middle))

	events, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "01/2019", events[0].MonthYear().String())
	assert.Equal(t, "03/2020", events[1].MonthYear().String())
	assert.Equal(t, "06/2021", events[2].MonthYear().String())
}

func TestTimelineService_UpdateResorts(t *testing.T) {
	svc, _ := newTestTimelineService()
	ctx := context.Background()

	a := mustEvent(t, "01/2019", "hired", "", "")
	b := mustEvent(t, "06/2021", "promoted", "", "")
	require.NoError(t, svc.Add(ctx, testUser, a, b))

	newDate, _ := valueobjects.NewMonthYear(12, 2023)
	updated, err := svc.Update(ctx, testUser, a.ID(), newDate, "hired", "", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), updated.ID())

	events, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, b.ID(), events[0].ID())
	assert.Equal(t, a.ID(), events[1].ID())
}

func TestTimelineService_EventTextLimit(t *testing.T) {
	svc, _ := newTestTimelineService()
	ctx := context.Background()

	long := strings.Repeat("x", domainconfig.DefaultDomainConfig().MaxEventLength+1)
	err := svc.Add(ctx, testUser, mustEvent(t, "01/2020", long, "", ""))
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestTimelineService_RemoveNotFound(t *testing.T) {
	svc, _ := newTestTimelineService()
	err := svc.Remove(context.Background(), testUser, "missing")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestTimelineService_ImportResume(t *testing.T) {
	svc, repo := newTestTimelineService()
	ctx := context.Background()

	text := `Engineer at Initech    Jan 2019 - Mar 2021
- built things

Senior Engineer at Globex    Apr 2021 - Present`

	added, err := svc.ImportResume(ctx, testUser, text)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, repo.SaveCount[testUser], "resume import must persist once")

	events, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "01/2019", events[0].MonthYear().String())
	assert.Contains(t, events[0].ProfessionalEvent(), "**Engineer** at Initech")
}

func TestTimelineService_ImportResumeRejectsUnparseableText(t *testing.T) {
	svc, _ := newTestTimelineService()

	_, err := svc.ImportResume(context.Background(), testUser, "no job entries here")
	assert.True(t, pkgerrors.IsValidation(err))

	events, listErr := svc.List(context.Background(), testUser)
	require.NoError(t, listErr)
	assert.Empty(t, events)
}
