package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodiebot-be/internal/dto"
	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/repository/contract"
	"foodiebot-be/internal/repository/memory"
	"foodiebot-be/internal/repository/specification"
	"foodiebot-be/internal/repository/unitofwork"
	"foodiebot-be/pkg/intent"
	"foodiebot-be/pkg/scoring"
	"foodiebot-be/pkg/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products []*entity.Product
	err      error
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }
func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, p := range r.products {
				if p.Id == byID.ID {
					return p, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	return r.products, r.err
}

func (r *fakeProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.products)), r.err
}

type fakeUow struct {
	products contract.ProductRepository
}

func (u *fakeUow) Begin(ctx context.Context) error                       { return nil }
func (u *fakeUow) Commit() error                                         { return nil }
func (u *fakeUow) Rollback() error                                       { return nil }
func (u *fakeUow) ProductRepository() contract.ProductRepository         { return u.products }
func (u *fakeUow) InteractionEventRepository() contract.InteractionEventRepository {
	return nil
}

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type recordingPublisher struct {
	messages []*dto.PublishInteractionMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg *dto.PublishInteractionMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []*dto.PublishInteractionMessage {
	var out []*dto.PublishInteractionMessage
	for _, m := range p.messages {
		if m.Type == eventType {
			out = append(out, m)
		}
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func catalogProduct(name string, price float64, dietary []string) *entity.Product {
	return &entity.Product{
		Id:          uuid.New(),
		Name:        name,
		Price:       price,
		DietaryTags: dietary,
	}
}

type serviceFixture struct {
	svc       IRecommendationService
	sessions  *session.Manager
	publisher *recordingPublisher
	repo      *fakeProductRepo
}

func newFixture(products []*entity.Product, repoErr error) *serviceFixture {
	repo := &fakeProductRepo{products: products, err: repoErr}
	publisher := &recordingPublisher{}
	sessions := session.NewManager(memory.NewSessionRepository(time.Minute), 5, 3)

	svc := NewRecommendationService(
		&fakeFactory{uow: &fakeUow{products: repo}},
		intent.NewExtractor(nil, 0),
		sessions,
		scoring.NewEngine(scoring.DefaultWeights(), nil),
		publisher,
		noopLogger{},
		6,
		time.Second,
	)
	return &serviceFixture{svc: svc, sessions: sessions, publisher: publisher, repo: repo}
}

func TestHandleTurnFullFlow(t *testing.T) {
	f := newFixture([]*entity.Product{
		catalogProduct("Vegan Bowl", 8, []string{"vegan"}),
		catalogProduct("Cheeseburger", 7, nil),
	}, nil)

	res, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{
		Message: "vegan food under $10",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionId, "new session id should be minted")
	assert.Equal(t, []string{"vegan"}, res.Intent.DietaryTags)
	require.NotNil(t, res.Intent.BudgetCeiling)
	assert.Equal(t, 10.0, *res.Intent.BudgetCeiling)

	require.Len(t, res.Products, 1, "non-vegan product must be filtered out")
	assert.Equal(t, "Vegan Bowl", res.Products[0].Name)
	assert.Equal(t, 1, res.Products[0].Rank)
	assert.Greater(t, res.EngagementScore, 0)
	assert.NotEmpty(t, res.Reply)

	// One query event and one shown event on the bus.
	require.Len(t, f.publisher.byType(entity.EventTypeQueryIssued), 1)
	shown := f.publisher.byType(entity.EventTypeProductShown)
	require.Len(t, shown, 1)
	assert.Equal(t, []string{res.Products[0].ProductId}, shown[0].ProductIds)
}

func TestHandleTurnContextCarriesOver(t *testing.T) {
	f := newFixture([]*entity.Product{
		catalogProduct("Vegan Bowl", 8, []string{"vegan"}),
		catalogProduct("Vegan Feast", 14, []string{"vegan"}),
	}, nil)

	first, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{Message: "vegan options"})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)

	second, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{
		SessionId: first.SessionId,
		Message:   "under $10",
	})
	require.NoError(t, err)

	// The vegan constraint from turn one still applies with the new budget.
	require.Len(t, second.Products, 1)
	assert.Equal(t, "Vegan Bowl", second.Products[0].Name)
}

func TestHandleTurnCatalogFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture(nil, errors.New("connection refused"))

	_, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{
		SessionId: "s1",
		Message:   "vegan please",
	})
	require.ErrorIs(t, err, ErrCatalogUnavailable)

	sess := f.sessions.GetOrCreate("s1")
	assert.Empty(t, sess.Turns, "failed turn must not be recorded")
	assert.Empty(t, sess.DietaryTags)
	assert.Empty(t, f.publisher.messages, "failed turn must not emit events")
}

func TestHandleTurnPublishFailureDoesNotFailTurn(t *testing.T) {
	f := newFixture([]*entity.Product{catalogProduct("Bowl", 8, nil)}, nil)
	f.publisher.err = errors.New("bus down")

	res, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{Message: "something spicy"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionId)
}

func TestHandleTurnEmptyResultReply(t *testing.T) {
	f := newFixture([]*entity.Product{catalogProduct("Cheeseburger", 7, nil)}, nil)

	res, err := f.svc.HandleTurn(context.Background(), &dto.ChatTurnRequest{Message: "vegan only"})
	require.NoError(t, err)

	assert.Empty(t, res.Products)
	assert.NotEmpty(t, res.Reply, "empty result still needs a conversational reply")
	// No shown event when nothing was shown.
	assert.Empty(t, f.publisher.byType(entity.EventTypeProductShown))
}

func TestRecommendStateless(t *testing.T) {
	f := newFixture([]*entity.Product{
		catalogProduct("Vegan Bowl", 8, []string{"vegan"}),
		catalogProduct("Cheeseburger", 7, nil),
	}, nil)

	ten := 10.0
	res, err := f.svc.Recommend(context.Background(), &dto.RecommendRequest{
		BudgetCeiling: &ten,
		DietaryTags:   []string{"vegan"},
	})
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Vegan Bowl", res.Products[0].Name)
	assert.Empty(t, f.publisher.messages, "stateless query must not emit events")
}

func TestRecommendLimit(t *testing.T) {
	products := []*entity.Product{}
	for i := 0; i < 10; i++ {
		products = append(products, catalogProduct("P", float64(i+1), nil))
	}
	f := newFixture(products, nil)

	res, err := f.svc.Recommend(context.Background(), &dto.RecommendRequest{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)
}

func TestRecordChoicePublishesChosenEvent(t *testing.T) {
	bowl := catalogProduct("Vegan Bowl", 8, []string{"vegan"})
	f := newFixture([]*entity.Product{bowl}, nil)

	err := f.svc.RecordChoice(context.Background(), &dto.RecordChoiceRequest{
		SessionId: "s1",
		ProductId: bowl.Id.String(),
	})
	require.NoError(t, err)

	chosen := f.publisher.byType(entity.EventTypeProductChosen)
	require.Len(t, chosen, 1)
	assert.Equal(t, bowl.Id.String(), chosen[0].ProductId)
	assert.Equal(t, "s1", chosen[0].SessionId)
}

func TestRecordChoiceUnknownProduct(t *testing.T) {
	f := newFixture(nil, nil)

	err := f.svc.RecordChoice(context.Background(), &dto.RecordChoiceRequest{
		SessionId: "s1",
		ProductId: uuid.NewString(),
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, f.publisher.messages)
}

func TestRecordChoiceMalformedId(t *testing.T) {
	f := newFixture(nil, nil)

	err := f.svc.RecordChoice(context.Background(), &dto.RecordChoiceRequest{
		SessionId: "s1",
		ProductId: "not-a-uuid",
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}
