package participation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/infrastructure/memory"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type env struct {
	svc   *Service
	store *memory.Store
	owner domain.User
	cat   domain.Category
	now   time.Time
}

func setup(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	owner := &domain.User{Name: "owner", Email: "owner@example.com"}
	require.NoError(t, store.CreateUser(ctx, owner))
	cat := &domain.Category{Name: "sport"}
	require.NoError(t, store.CreateCategory(ctx, cat))

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return env{
		svc:   New(store, store, store, store, fakeClock{t: now}),
		store: store,
		owner: *owner,
		cat:   *cat,
		now:   now,
	}
}

func (e env) user(t *testing.T, name string) domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return *u
}

func (e env) event(t *testing.T, limit int, moderation bool, state domain.EventState) domain.Event {
	t.Helper()
	ev := &domain.Event{
		Annotation:        "annotation text long enough",
		Description:       "description text long enough",
		Title:             "match",
		EventDate:         e.now.Add(48 * time.Hour),
		Category:          e.cat,
		Initiator:         e.owner.Short(),
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             state,
		CreatedOn:         e.now,
	}
	require.NoError(t, e.store.CreateEvent(context.Background(), ev))
	return *ev
}

func (e env) confirmed(t *testing.T, eventID int64) int64 {
	t.Helper()
	ev, err := e.store.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	return ev.ConfirmedRequests
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("unlimited_event_confirms_immediately_and_rejects_duplicates", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)
		u := e.user(t, "bob")

		r, err := e.svc.Add(ctx, u.ID, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestConfirmed, r.Status)
		assert.Equal(t, e.now, r.Created)
		assert.Equal(t, int64(1), e.confirmed(t, ev.ID))

		_, err = e.svc.Add(ctx, u.ID, ev.ID)
		assert.Equal(t, domain.CodeRequestAlreadyExists, domain.CodeOf(err))
		assert.Equal(t, int64(1), e.confirmed(t, ev.ID))
	})

	t.Run("no_moderation_confirms_up_to_limit", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 2, false, domain.StatePublished)

		for i := 0; i < 2; i++ {
			r, err := e.svc.Add(ctx, e.user(t, fmt.Sprintf("u%d", i)).ID, ev.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.RequestConfirmed, r.Status)
		}

		_, err := e.svc.Add(ctx, e.user(t, "late").ID, ev.ID)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
		assert.Equal(t, int64(2), e.confirmed(t, ev.ID))
	})

	t.Run("moderated_event_starts_pending", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 5, true, domain.StatePublished)

		r, err := e.svc.Add(ctx, e.user(t, "bob").ID, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestPending, r.Status)
		assert.Equal(t, int64(0), e.confirmed(t, ev.ID))
	})

	t.Run("unpublished_event_is_not_authorized", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePending)
		_, err := e.svc.Add(ctx, e.user(t, "bob").ID, ev.ID)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
	})

	t.Run("initiator_is_not_authorized", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)
		_, err := e.svc.Add(ctx, e.owner.ID, ev.ID)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
	})

	t.Run("unknown_user_or_event_is_not_found", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)

		_, err := e.svc.Add(ctx, 999, ev.ID)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))

		_, err = e.svc.Add(ctx, e.user(t, "bob").ID, 999)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})

	t.Run("canceled_request_is_reopened", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 5, true, domain.StatePublished)
		u := e.user(t, "bob")

		first, err := e.svc.Add(ctx, u.ID, ev.ID)
		require.NoError(t, err)
		_, err = e.svc.Cancel(ctx, u.ID, first.ID)
		require.NoError(t, err)

		again, err := e.svc.Add(ctx, u.ID, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, domain.RequestPending, again.Status)
	})

	t.Run("concurrent_requests_never_exceed_limit", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 3, false, domain.StatePublished)

		users := make([]domain.User, 20)
		for i := range users {
			users[i] = e.user(t, fmt.Sprintf("racer%d", i))
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		admitted := 0
		for _, u := range users {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				if _, err := e.svc.Add(ctx, id, ev.ID); err == nil {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}(u.ID)
		}
		wg.Wait()

		assert.Equal(t, 3, admitted)
		assert.Equal(t, int64(3), e.confirmed(t, ev.ID))
	})
}

func TestService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	pendingPair := func(t *testing.T, e env, limit int) (domain.Event, int64, int64) {
		t.Helper()
		ev := e.event(t, limit, true, domain.StatePublished)
		r1, err := e.svc.Add(ctx, e.user(t, "first").ID, ev.ID)
		require.NoError(t, err)
		r2, err := e.svc.Add(ctx, e.user(t, "second").ID, ev.ID)
		require.NoError(t, err)
		return ev, r1.ID, r2.ID
	}

	t.Run("overflow_is_auto_rejected", func(t *testing.T) {
		e := setup(t)
		ev, r1, r2 := pendingPair(t, e, 1)

		res, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r1, r2}, domain.RequestConfirmed)
		require.NoError(t, err)
		require.Len(t, res.Confirmed, 1)
		require.Len(t, res.Rejected, 1)
		assert.Equal(t, r1, res.Confirmed[0].ID)
		assert.Equal(t, r2, res.Rejected[0].ID)
		assert.Equal(t, int64(1), e.confirmed(t, ev.ID))

		stored, err := e.store.GetRequest(ctx, r2)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestRejected, stored.Status)
	})

	t.Run("reject_all", func(t *testing.T) {
		e := setup(t)
		ev, r1, r2 := pendingPair(t, e, 3)

		res, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r1, r2}, domain.RequestRejected)
		require.NoError(t, err)
		assert.Empty(t, res.Confirmed)
		assert.Len(t, res.Rejected, 2)
		assert.Equal(t, int64(0), e.confirmed(t, ev.ID))
	})

	t.Run("non_pending_request_changes_nothing", func(t *testing.T) {
		e := setup(t)
		ev, r1, r2 := pendingPair(t, e, 3)
		_, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r1}, domain.RequestConfirmed)
		require.NoError(t, err)

		_, err = e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r2, r1}, domain.RequestConfirmed)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))

		stored, _ := e.store.GetRequest(ctx, r2)
		assert.Equal(t, domain.RequestPending, stored.Status)
		assert.Equal(t, int64(1), e.confirmed(t, ev.ID))
	})

	t.Run("only_initiator_may_moderate", func(t *testing.T) {
		e := setup(t)
		ev, r1, _ := pendingPair(t, e, 3)
		stranger := e.user(t, "stranger")

		_, err := e.svc.ChangeStatus(ctx, stranger.ID, ev.ID, []int64{r1}, domain.RequestConfirmed)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
	})

	t.Run("unknown_request_is_not_found", func(t *testing.T) {
		e := setup(t)
		ev, r1, _ := pendingPair(t, e, 3)

		_, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r1, 4242}, domain.RequestConfirmed)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})

	t.Run("event_without_moderation_is_not_modifiable", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)
		r, err := e.svc.Add(ctx, e.user(t, "bob").ID, ev.ID)
		require.NoError(t, err)

		_, err = e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{r.ID}, domain.RequestRejected)
		assert.Equal(t, domain.CodeEventNotModifiable, domain.CodeOf(err))
	})

	t.Run("unmoderated_event_is_not_modifiable_before_id_lookup", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 5, false, domain.StatePublished)

		_, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, []int64{4242}, domain.RequestConfirmed)
		assert.Equal(t, domain.CodeEventNotModifiable, domain.CodeOf(err))

		unlimited := e.event(t, 0, true, domain.StatePublished)
		_, err = e.svc.ChangeStatus(ctx, e.owner.ID, unlimited.ID, []int64{4242}, domain.RequestRejected)
		assert.Equal(t, domain.CodeEventNotModifiable, domain.CodeOf(err))
	})

	t.Run("empty_id_list_is_invalid", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 2, true, domain.StatePublished)
		_, err := e.svc.ChangeStatus(ctx, e.owner.ID, ev.ID, nil, domain.RequestConfirmed)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel_is_idempotent_and_keeps_counter", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)
		u := e.user(t, "bob")
		r, err := e.svc.Add(ctx, u.ID, ev.ID)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			got, err := e.svc.Cancel(ctx, u.ID, r.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.RequestCanceled, got.Status)
		}
		assert.Equal(t, int64(1), e.confirmed(t, ev.ID))
	})

	t.Run("other_user_is_not_authorized", func(t *testing.T) {
		e := setup(t)
		ev := e.event(t, 0, true, domain.StatePublished)
		r, err := e.svc.Add(ctx, e.user(t, "bob").ID, ev.ID)
		require.NoError(t, err)

		_, err = e.svc.Cancel(ctx, e.owner.ID, r.ID)
		assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
	})

	t.Run("unknown_request_is_not_found", func(t *testing.T) {
		e := setup(t)
		_, err := e.svc.Cancel(ctx, e.owner.ID, 77)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}

func TestService_Listings(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	ev := e.event(t, 0, true, domain.StatePublished)
	u := e.user(t, "bob")
	_, err := e.svc.Add(ctx, u.ID, ev.ID)
	require.NoError(t, err)

	mine, err := e.svc.ListMine(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forEvent, err := e.svc.ListForEvent(ctx, e.owner.ID, ev.ID)
	require.NoError(t, err)
	assert.Len(t, forEvent, 1)

	_, err = e.svc.ListForEvent(ctx, u.ID, ev.ID)
	assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
}
