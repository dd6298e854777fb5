package service

import (
	"context"
	"fmt"
	"time"

	"foodiebot-be/internal/constant"
	"foodiebot-be/internal/dto"
	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/pkg/logger"
	"foodiebot-be/internal/repository/specification"
	"foodiebot-be/internal/repository/unitofwork"
	"foodiebot-be/pkg/intent"
	"foodiebot-be/pkg/scoring"
	"foodiebot-be/pkg/session"
	"foodiebot-be/pkg/store"

	"github.com/google/uuid"
)

// IRecommendationService is the core's surface toward the HTTP layer:
// a stateful conversational turn, a stateless filter query, and the
// choice signal feeding the collaborative rebuild.
type IRecommendationService interface {
	HandleTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error)
	Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error)
	RecordChoice(ctx context.Context, req *dto.RecordChoiceRequest) error
}

type recommendationService struct {
	uowFactory     unitofwork.RepositoryFactory
	extractor      *intent.Extractor
	sessions       *session.Manager
	engine         *scoring.Engine
	publisher      IPublisherService
	sysLogger      logger.ILogger
	resultLimit    int
	publishTimeout time.Duration
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	extractor *intent.Extractor,
	sessions *session.Manager,
	engine *scoring.Engine,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	resultLimit int,
	publishTimeout time.Duration,
) IRecommendationService {
	if resultLimit <= 0 {
		resultLimit = 6
	}
	if publishTimeout <= 0 {
		publishTimeout = 500 * time.Millisecond
	}
	return &recommendationService{
		uowFactory:     uowFactory,
		extractor:      extractor,
		sessions:       sessions,
		engine:         engine,
		publisher:      publisher,
		sysLogger:      sysLogger,
		resultLimit:    resultLimit,
		publishTimeout: publishTimeout,
	}
}

// HandleTurn runs one conversational exchange: extract, fetch catalog,
// merge context, score, record the outcome, emit events. The session is
// mutated only after the catalog fetch succeeds, so a collaborator failure
// leaves the context exactly as the previous turn left it.
func (s *recommendationService) HandleTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	prior := s.sessions.GetOrCreate(sessionID).Prior()
	extracted := s.extractor.Extract(ctx, req.Message, prior)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx)
	if err != nil {
		s.sysLogger.Error("recommendation", "Catalog fetch failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	sess := s.sessions.ApplyTurn(sessionID, extracted)
	turn := len(sess.Turns)

	mode := scoring.ParseMode(req.Mode)
	ranked := s.engine.Score(products, sess, mode)
	shown := ranked
	if len(shown) > s.resultLimit {
		shown = shown[:s.resultLimit]
	}

	shownIds := make([]string, 0, len(shown))
	for _, sp := range shown {
		shownIds = append(shownIds, sp.Product.Id.String())
	}
	sess = s.sessions.RecordOutcome(sessionID, shownIds, len(ranked))

	s.publishTurnEvents(ctx, sessionID, turn, extracted, shownIds)

	return &dto.ChatTurnResponse{
		SessionId:       sessionID,
		Intent:          toIntentDTO(extracted),
		Reply:           buildReply(extracted, len(shown)),
		EngagementScore: sess.EngagementScore,
		Products:        toScoredDTOs(shown),
	}, nil
}

// Recommend is the stateless variant: filters in, ranked products out.
// No session is touched and no events are written.
func (s *recommendationService) Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	specs := []specification.Specification{}
	if req.BudgetCeiling != nil {
		specs = append(specs, specification.MaxPrice{Ceiling: *req.BudgetCeiling})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	// An ad-hoc context carries the filters through the same scoring path
	// the conversational turn uses.
	adhoc := store.NewSession("")
	adhoc.Mood = req.Mood
	adhoc.BudgetCeiling = req.BudgetCeiling
	adhoc.DietaryTags = req.DietaryTags
	adhoc.Nutrient = req.Nutrient

	ranked := s.engine.Score(products, adhoc, scoring.ParseMode(req.Mode))

	limit := req.Limit
	if limit <= 0 || limit > s.resultLimit {
		limit = s.resultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &dto.RecommendResponse{Products: toScoredDTOs(ranked)}, nil
}

// RecordChoice feeds the event log consumed at the next affinity rebuild.
// Repeated calls for the same (session, product) pair are de-duplicated
// at rebuild time, so retries are safe.
func (s *recommendationService) RecordChoice(ctx context.Context, req *dto.RecordChoiceRequest) error {
	productID, err := uuid.Parse(req.ProductId)
	if err != nil {
		return fmt.Errorf("%w: invalid product id", ErrProductNotFound)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	turn := len(s.sessions.GetOrCreate(req.SessionId).Turns)

	pubCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, &dto.PublishInteractionMessage{
		Type:      entity.EventTypeProductChosen,
		SessionId: req.SessionId,
		Turn:      turn,
		ProductId: productID.String(),
		At:        time.Now(),
	}); err != nil {
		s.sysLogger.Warn("recommendation", "Failed to publish choice event", map[string]interface{}{
			"session_id": req.SessionId,
			"product_id": req.ProductId,
			"error":      err.Error(),
		})
	}
	return nil
}

// publishTurnEvents emits the query and shown events, best-effort within
// a short bound. A publish failure degrades analytics, never the turn.
func (s *recommendationService) publishTurnEvents(ctx context.Context, sessionID string, turn int, extracted intent.Intent, shownIds []string) {
	pubCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	intentPayload := map[string]interface{}{
		"mood":         extracted.Mood,
		"dietary_tags": extracted.DietaryTags,
		"nutrient":     extracted.Nutrient,
		"query":        extracted.Query,
		"source":       string(extracted.Source),
	}
	if extracted.BudgetCeiling != nil {
		intentPayload["budget_ceiling"] = *extracted.BudgetCeiling
	}

	if err := s.publisher.Publish(pubCtx, &dto.PublishInteractionMessage{
		Type:      entity.EventTypeQueryIssued,
		SessionId: sessionID,
		Turn:      turn,
		Intent:    intentPayload,
		At:        time.Now(),
	}); err != nil {
		s.sysLogger.Warn("recommendation", "Failed to publish query event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if len(shownIds) == 0 {
		return
	}
	if err := s.publisher.Publish(pubCtx, &dto.PublishInteractionMessage{
		Type:       entity.EventTypeProductShown,
		SessionId:  sessionID,
		Turn:       turn,
		ProductIds: shownIds,
		At:         time.Now(),
	}); err != nil {
		s.sysLogger.Warn("recommendation", "Failed to publish shown event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func buildReply(extracted intent.Intent, resultCount int) string {
	if extracted.OrderIntent {
		return constant.ReplyOrder
	}
	if resultCount == 0 {
		return constant.ReplyEmptyResult
	}
	if extracted.Mood != "" {
		return fmt.Sprintf(constant.ReplyMood, extracted.Mood)
	}
	if extracted.Nutrient != "" {
		return fmt.Sprintf(constant.ReplyNutrient, extracted.Nutrient)
	}
	if extracted.Source == intent.SourceNone {
		return constant.ReplyAskMore
	}
	return constant.ReplyGeneric
}

func toIntentDTO(in intent.Intent) dto.IntentDTO {
	return dto.IntentDTO{
		Mood:          in.Mood,
		BudgetCeiling: in.BudgetCeiling,
		DietaryTags:   in.DietaryTags,
		Nutrient:      in.Nutrient,
		Query:         in.Query,
		ResetFilters:  in.ResetFilters,
		Source:        string(in.Source),
	}
}

func toScoredDTOs(scored []scoring.ScoredProduct) []dto.ScoredProductDTO {
	out := make([]dto.ScoredProductDTO, 0, len(scored))
	for _, sp := range scored {
		out = append(out, dto.ScoredProductDTO{
			ProductId:   sp.Product.Id.String(),
			Name:        sp.Product.Name,
			Description: sp.Product.Description,
			Price:       sp.Product.Price,
			DietaryTags: sp.Product.DietaryTags,
			MoodTags:    sp.Product.MoodTags,
			ChefSpecial: sp.Product.ChefSpecial,
			Total:       sp.Total,
			SubScores: dto.SubScoresDTO{
				Preference:     sp.Sub.Preference,
				BudgetFit:      sp.Sub.BudgetFit,
				Dietary:        sp.Sub.Dietary,
				Collaborative:  sp.Sub.Collaborative,
				CuratedBonus:   sp.Sub.CuratedBonus,
				NoveltyPenalty: sp.Sub.NoveltyPenalty,
			},
			Rank: sp.Rank,
		})
	}
	return out
}
