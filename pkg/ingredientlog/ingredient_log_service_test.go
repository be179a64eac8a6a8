package ingredientlog

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/internal/events"
	"Pantry-API/pkg/member"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeJWTService struct{}

func (fakeJWTService) GenerateTokenDevice(memberID string, role string) string { return "token" }
func (fakeJWTService) ValidateTokenDevice(token string) (*jwtlib.Token, error) { return nil, nil }
func (fakeJWTService) GetMemberIDByToken(token string) (string, string, error) { return "", "", nil }

type fakeLogLLM struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeLogLLM) CreateEmbeddings(ctx context.Context, logs []*entities.IngredientLog) (map[string][]float32, error) {
	f.calls++
	return f.vectors, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Member{}, &entities.Ingredient{}, &entities.IngredientLog{}))
	return db
}

func newTestMemberService(db *gorm.DB) member.MemberService {
	bus := events.NewBus(zap.NewNop(), 1)
	return member.NewMemberService(db, member.NewMemberRepository(db), member.NewFCMTokenRepository(db), fakeJWTService{}, bus, zap.NewNop())
}

func recordTestMovements(t *testing.T, db *gorm.DB, service IngredientLogService, ingredients []*entities.Ingredient, movementType string) []uuid.UUID {
	t.Helper()

	var logIDs []uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		logIDs, err = service.RecordMovements(context.Background(), tx, ingredients, movementType)
		return err
	})
	require.NoError(t, err)
	return logIDs
}

func TestRecordMovementsSnapshotsIngredients(t *testing.T) {
	db := newTestDB(t)
	service := NewIngredientLogService(db, NewIngredientLogRepository(db), &fakeLogLLM{}, newTestMemberService(db), zap.NewNop())

	memberID := uuid.New()
	ingredients := []*entities.Ingredient{
		{ID: uuid.New(), Name: "milk", ImagePath: "milk.png", MemberID: memberID},
		{ID: uuid.New(), Name: "eggs", ImagePath: "eggs.png", MemberID: memberID},
	}

	logIDs := recordTestMovements(t, db, service, ingredients, entities.MovementInbound)
	require.Len(t, logIDs, 2)

	logs, err := NewIngredientLogRepository(db).FindByIDs(context.Background(), logIDs)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, log := range logs {
		require.Equal(t, entities.MovementInbound, log.MovementType)
		require.Equal(t, memberID, log.MemberID)
		require.NotEmpty(t, log.IngredientName)
		require.Nil(t, log.EmbeddingVector)
	}
}

func TestSetEmbeddingVectorsPatchesReturnedLogs(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientLogRepository(db)

	ingredients := []*entities.Ingredient{
		{ID: uuid.New(), Name: "milk", MemberID: uuid.New()},
		{ID: uuid.New(), Name: "eggs", MemberID: uuid.New()},
	}
	llm := &fakeLogLLM{vectors: map[string][]float32{}}
	service := NewIngredientLogService(db, repo, llm, newTestMemberService(db), zap.NewNop())

	logIDs := recordTestMovements(t, db, service, ingredients, entities.MovementOutbound)

	// The LLM only embeds the first log; the second keeps its nil vector.
	llm.vectors[logIDs[0].String()] = []float32{0.1, 0.2, 0.3}

	service.SetEmbeddingVectors(context.Background(), logIDs)

	logs, err := repo.FindByIDs(context.Background(), logIDs)
	require.NoError(t, err)
	byID := map[uuid.UUID]*entities.IngredientLog{}
	for _, log := range logs {
		byID[log.ID] = log
	}
	require.Equal(t, []float32{0.1, 0.2, 0.3}, []float32(byID[logIDs[0]].EmbeddingVector))
	require.Nil(t, byID[logIDs[1]].EmbeddingVector)
	require.Equal(t, 1, llm.calls)
}

func TestSetEmbeddingVectorsSwallowsLLMFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientLogRepository(db)
	llm := &fakeLogLLM{err: errors.New("llm down")}
	service := NewIngredientLogService(db, repo, llm, newTestMemberService(db), zap.NewNop())

	logIDs := recordTestMovements(t, db, service, []*entities.Ingredient{
		{ID: uuid.New(), Name: "milk", MemberID: uuid.New()},
	}, entities.MovementInbound)

	service.SetEmbeddingVectors(context.Background(), logIDs)

	logs, err := repo.FindByIDs(context.Background(), logIDs)
	require.NoError(t, err)
	require.Nil(t, logs[0].EmbeddingVector)
}

func TestSetEmbeddingVectorsSkipsEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	llm := &fakeLogLLM{}
	service := NewIngredientLogService(db, NewIngredientLogRepository(db), llm, newTestMemberService(db), zap.NewNop())

	service.SetEmbeddingVectors(context.Background(), nil)
	require.Equal(t, 0, llm.calls)
}

func TestFindPageSortsAndFallsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientLogRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&entities.IngredientLog{
			ID:             uuid.New(),
			IngredientName: fmt.Sprintf("item-%d", i),
			MemberID:       uuid.New(),
			MovementType:   entities.MovementInbound,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	logs, count, err := repo.FindPage(context.Background(), nil, 1, 2, "created_at", "asc")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	require.Len(t, logs, 2)
	require.Equal(t, "item-0", logs[0].IngredientName)

	// Unknown sort column falls back to created_at, unknown direction to desc.
	logs, _, err = repo.FindPage(context.Background(), nil, 1, 3, "embedding_vector; drop table", "sideways")
	require.NoError(t, err)
	require.Equal(t, "item-2", logs[0].IngredientName)
}

func TestGetIngredientLogsFiltersByMember(t *testing.T) {
	db := newTestDB(t)
	service := NewIngredientLogService(db, NewIngredientLogRepository(db), &fakeLogLLM{}, newTestMemberService(db), zap.NewNop())

	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&entities.Member{ID: alice, Name: "Alice"}).Error)
	require.NoError(t, db.Create(&entities.Member{ID: bob, Name: "Bob"}).Error)

	recordTestMovements(t, db, service, []*entities.Ingredient{
		{ID: uuid.New(), Name: "milk", MemberID: alice},
		{ID: uuid.New(), Name: "eggs", MemberID: alice},
	}, entities.MovementInbound)
	recordTestMovements(t, db, service, []*entities.Ingredient{
		{ID: uuid.New(), Name: "tofu", MemberID: bob},
	}, entities.MovementInbound)

	logs, count, err := service.GetIngredientLogs(context.Background(), alice.String(), 1, 10, "created_at", "asc")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	require.Len(t, logs, 2)
	for _, log := range logs {
		require.Equal(t, alice.String(), log.MemberID)
	}

	// No filter returns the whole household log.
	logs, count, err = service.GetIngredientLogs(context.Background(), "", 1, 10, "created_at", "asc")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	require.Len(t, logs, 3)
}

func TestGetIngredientLogsUnknownMember(t *testing.T) {
	db := newTestDB(t)
	service := NewIngredientLogService(db, NewIngredientLogRepository(db), &fakeLogLLM{}, newTestMemberService(db), zap.NewNop())

	_, _, err := service.GetIngredientLogs(context.Background(), uuid.NewString(), 1, 10, "created_at", "asc")
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}
