package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"empire-service/internal/engine"
	"empire-service/internal/messaging/notifier"
	"empire-service/internal/repository"
	"empire-service/internal/repository/model"
)

func serviceWorld(version uint64) *model.World {
	return &model.World{
		Id:       model.WorldId,
		Version:  version,
		Calendar: model.Calendar{Day: 1, Month: 1, Year: 1},
		Treasury: 1000,
		Countries: []model.Country{
			{Id: "A", Name: "Austrasie", Treasury: 500},
			{Id: "B", Name: "Borée", Treasury: 10},
		},
		Citizens: []model.Citizen{
			{Id: "alice", Name: "Alice", Role: engine.RoleCitoyen, CountryId: "A", Balance: 100, Status: model.StatusActive},
			{Id: "bob", Name: "Bob", Role: engine.RoleCitoyen, CountryId: "B", Balance: 50, Status: model.StatusActive},
			{Id: "imperator", Name: "Imperator", Role: engine.RoleEmpereur, Balance: 10000, Status: model.StatusActive},
		},
	}
}

func newTestService(t *testing.T) (*EmpireService, *repository.MockRepository, *notifier.MockNotifier) {
	ctrl := gomock.NewController(t)
	repo := repository.NewMockRepository(ctrl)
	notif := notifier.NewMockNotifier(ctrl)
	return NewEmpireService(zap.NewNop().Sugar(), repo, notif), repo, notif
}

var (
	aliceSession     = engine.Session{Id: "alice", Name: "Alice", Role: engine.RoleCitoyen, CountryId: "A"}
	imperatorSession = engine.Session{Id: "imperator", Name: "Imperator", Role: engine.RoleEmpereur}
)

func TestEmpireService_Transfer(t *testing.T) {
	svc, repo, notif := newTestService(t)
	ctx := context.Background()

	var saved *model.World
	repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)
	repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).
		DoAndReturn(func(_ context.Context, w *model.World, _ uint64) error {
			saved = w
			return nil
		})
	notif.EXPECT().LedgerAppend(ctx, gomock.Any()).Return(nil)

	entries, err := svc.Transfer(ctx, aliceSession,
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "alice"},
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "bob"},
		30)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(30), entries[0].Amount)
	require.NotNil(t, saved)
	assert.Equal(t, int64(70), saved.Citizen("alice").Balance)
	assert.Equal(t, int64(80), saved.Citizen("bob").Balance)
}

func TestEmpireService_Transfer_RetriesOnVersionConflict(t *testing.T) {
	svc, repo, notif := newTestService(t)
	ctx := context.Background()

	// A concurrent writer wins the first save; the second read sees the new
	// version and the retry succeeds.
	gomock.InOrder(
		repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil),
		repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).Return(repository.ErrVersionConflict),
		repo.EXPECT().GetWorld(ctx).Return(serviceWorld(2), nil),
		repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(2)).Return(nil),
	)
	notif.EXPECT().LedgerAppend(ctx, gomock.Any()).Return(nil)

	_, err := svc.Transfer(ctx, aliceSession,
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "alice"},
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "bob"},
		30)
	assert.NoError(t, err)
}

func TestEmpireService_Transfer_ConflictRetriesExhausted(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil).Times(maxSaveAttempts)
	repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).Return(repository.ErrVersionConflict).Times(maxSaveAttempts)

	_, err := svc.Transfer(ctx, aliceSession,
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "alice"},
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "bob"},
		30)
	assert.Equal(t, ErrConflict, err)
}

func TestEmpireService_Transfer_RejectionSkipsSave(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)

	// Alice cannot debit Bob's account; nothing is saved or published.
	_, err := svc.Transfer(ctx, aliceSession,
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "bob"},
		engine.AccountRef{Kind: engine.AccountCitizen, Id: "alice"},
		30)
	reason, ok := engine.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, engine.ReasonForbiddenDebit, reason)
}

func TestEmpireService_AdvanceDay(t *testing.T) {
	t.Run("global authority advances the calendar", func(t *testing.T) {
		svc, repo, notif := newTestService(t)
		ctx := context.Background()

		repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)
		repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).Return(nil)
		notif.EXPECT().DayAdvanced(ctx, model.Calendar{Day: 2, Month: 1, Year: 1}).Return(nil)

		calendar, err := svc.AdvanceDay(ctx, imperatorSession)
		require.NoError(t, err)
		assert.Equal(t, model.Calendar{Day: 2, Month: 1, Year: 1}, calendar)
	})

	t.Run("citizens cannot", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AdvanceDay(context.Background(), aliceSession)
		reason, ok := engine.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, engine.ReasonForbidden, reason)
	})
}

func TestEmpireService_CreateTravelRequest_RejectedStillPersisted(t *testing.T) {
	svc, repo, notif := newTestService(t)
	ctx := context.Background()

	world := serviceWorld(1)
	world.Country("B").Laws.CloseBorders = true

	var saved *model.World
	repo.EXPECT().GetWorld(ctx).Return(world, nil)
	repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).
		DoAndReturn(func(_ context.Context, w *model.World, _ uint64) error {
			saved = w
			return nil
		})
	notif.EXPECT().TravelRequestUpdate(ctx, gomock.Any(), notifier.ChangeCreate).Return(nil)

	req, err := svc.CreateTravelRequest(ctx, aliceSession, "A", "B", "")

	reason, ok := engine.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, engine.ReasonCloseBorders, reason)
	assert.Equal(t, model.RequestRejected, req.Status)
	require.NotNil(t, saved, "rejected request still recorded for audit")
	require.Len(t, saved.TravelRequests, 1)
	assert.Equal(t, model.RequestRejected, saved.TravelRequests[0].Status)
}

func TestEmpireService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	worldWithHash := func() *model.World {
		w := serviceWorld(1)
		w.Citizen("alice").PasswordHash = string(hash)
		return w
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().GetWorld(gomock.Any()).Return(worldWithHash(), nil)

		sess, err := svc.Login(context.Background(), "Alice", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, aliceSession, sess)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().GetWorld(gomock.Any()).Return(worldWithHash(), nil)

		_, err := svc.Login(context.Background(), "Alice", "wrong")
		assert.Equal(t, errInvalidCredentials, err)
	})

	t.Run("unknown name", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().GetWorld(gomock.Any()).Return(worldWithHash(), nil)

		_, err := svc.Login(context.Background(), "Nobody", "hunter2")
		assert.Equal(t, errInvalidCredentials, err)
	})

	t.Run("citizen without a password cannot log in", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().GetWorld(gomock.Any()).Return(serviceWorld(1), nil)

		_, err := svc.Login(context.Background(), "Alice", "")
		assert.Equal(t, errInvalidCredentials, err)
	})
}

func TestEmpireService_UpdateCitizen(t *testing.T) {
	t.Run("new citizen gets a password hash", func(t *testing.T) {
		svc, repo, notif := newTestService(t)
		ctx := context.Background()

		var saved *model.World
		repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)
		repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).
			DoAndReturn(func(_ context.Context, w *model.World, _ uint64) error {
				saved = w
				return nil
			})
		notif.EXPECT().CitizenUpdate(ctx, gomock.Any(), notifier.ChangeCreate).Return(nil)

		form := model.Citizen{Id: "newbie", Name: "Newbie", Role: engine.RoleCitoyen, CountryId: "A", Status: model.StatusActive}
		created, err := svc.UpdateCitizen(ctx, aliceSession, form, "secret")
		require.NoError(t, err)

		assert.NotEmpty(t, created.PasswordHash)
		stored := saved.Citizen("newbie")
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
	})

	t.Run("cosmetic edit keeps the stored hash", func(t *testing.T) {
		svc, repo, notif := newTestService(t)
		ctx := context.Background()

		world := serviceWorld(1)
		world.Citizen("alice").PasswordHash = "existing-hash"

		var saved *model.World
		repo.EXPECT().GetWorld(ctx).Return(world, nil)
		repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).
			DoAndReturn(func(_ context.Context, w *model.World, _ uint64) error {
				saved = w
				return nil
			})
		notif.EXPECT().CitizenUpdate(ctx, gomock.Any(), notifier.ChangeModify).Return(nil)

		form := *world.Citizen("alice")
		form.PasswordHash = ""
		form.Bio = "scribe"
		_, err := svc.UpdateCitizen(ctx, aliceSession, form, "")
		require.NoError(t, err)

		assert.Equal(t, "existing-hash", saved.Citizen("alice").PasswordHash)
		assert.Equal(t, "scribe", saved.Citizen("alice").Bio)
	})

	t.Run("rejection leaves the world untouched", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		ctx := context.Background()

		repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)

		form := model.Citizen{Id: "bob", Name: "Bob", Role: engine.RoleCitoyen, CountryId: "B", Balance: 0, Status: model.StatusActive}
		_, err := svc.UpdateCitizen(ctx, aliceSession, form, "")
		reason, ok := engine.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, engine.ReasonForbidden, reason)
	})
}

func TestEmpireService_DebtLifecycle(t *testing.T) {
	svc, repo, notif := newTestService(t)
	ctx := context.Background()

	// Creation writes the draft but moves no money.
	repo.EXPECT().GetWorld(ctx).Return(serviceWorld(1), nil)
	repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(1)).Return(nil)

	debt, err := svc.CreateDebt(ctx, aliceSession, "bob", 100, 15, "seed grain", "12/4/2")
	require.NoError(t, err)
	assert.Equal(t, model.DebtDraft, debt.Status)
	assert.Equal(t, int64(115), debt.TotalAmount)

	// Signing disburses the principal, which must be published.
	signedWorld := serviceWorld(2)
	signedWorld.Debts = []model.DebtContract{debt}
	bobSession := engine.Session{Id: "bob", Name: "Bob", Role: engine.RoleCitoyen, CountryId: "B"}

	repo.EXPECT().GetWorld(ctx).Return(signedWorld, nil)
	repo.EXPECT().SaveWorld(ctx, gomock.Any(), uint64(2)).Return(nil)
	notif.EXPECT().LedgerAppend(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []model.LedgerEntry) error {
			assert.Len(t, entries, 1)
			assert.Equal(t, int64(100), entries[0].Amount)
			return nil
		})

	signed, err := svc.SignDebt(ctx, bobSession, debt.Id)
	require.NoError(t, err)
	assert.Equal(t, model.DebtActive, signed.Status)
}
