package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"wrestling-admin/internal/domains/association/model"
	"wrestling-admin/internal/domains/association/repository"
	entitymodel "wrestling-admin/internal/domains/entity/model"
	wrestlermodel "wrestling-admin/internal/domains/wrestler/model"
	"wrestling-admin/internal/infrastructure/database"
	"wrestling-admin/internal/shared/listing"
)

type associationService struct {
	repo     repository.RepositoryInterface
	entities EntityReader
}

func NewAssociationService(repo repository.RepositoryInterface, entities EntityReader) ServiceInterface {
	return &associationService{
		repo:     repo,
		entities: entities,
	}
}

func entityName(e entitymodel.Entity) string { return e.Name }

// ==================== WRESTLER → ENTITIES ====================

func (s *associationService) AssociatedEntities(ctx context.Context, wrestlerID int64, kind entitymodel.Kind) ([]entitymodel.Entity, error) {
	if _, err := model.JunctionFor(kind); err != nil {
		return nil, err
	}

	ids, err := s.repo.RelatedIDs(ctx, kind, wrestlerID)
	if err != nil {
		log.Error().Err(err).Int64("wrestler_id", wrestlerID).Str("kind", string(kind)).Msg("failed to load association ids")
		return nil, entitymodel.NewStoreFailure("load", kind, err)
	}
	if len(ids) == 0 {
		return []entitymodel.Entity{}, nil
	}

	// Id của entity đã bị xóa (orphan row) đơn giản là không có trong kết quả
	list, err := s.entities.GetByIDs(ctx, kind, model.UniqueIDs(ids))
	if err != nil {
		log.Error().Err(err).Int64("wrestler_id", wrestlerID).Str("kind", string(kind)).Msg("failed to load associated entities")
		return nil, entitymodel.NewStoreFailure("load", kind, err)
	}

	listing.SortByNameAsc(list, entityName)
	return list, nil
}

// ==================== REPLACE ====================

func (s *associationService) ReplaceAssociations(ctx context.Context, wrestlerID int64, kind entitymodel.Kind, ids []int64) error {
	if _, err := model.JunctionFor(kind); err != nil {
		return err
	}
	if wrestlerID <= 0 {
		return entitymodel.NewInvalidID(fmt.Sprint(wrestlerID))
	}

	unique := model.UniqueIDs(ids)
	if err := s.repo.Replace(ctx, kind, wrestlerID, unique); err != nil {
		log.Error().Err(err).Int64("wrestler_id", wrestlerID).Str("kind", string(kind)).Ints64("ids", unique).
			Msg("failed to replace associations")
		if database.IsForeignKeyViolation(err) {
			return entitymodel.NewValidationError(fmt.Errorf("selection references an unknown %s", kind.Label()))
		}
		return entitymodel.NewStoreFailure("link", kind, err)
	}

	log.Debug().Int64("wrestler_id", wrestlerID).Str("kind", string(kind)).Int("count", len(unique)).Msg("associations replaced")
	return nil
}

// ReplaceAll: ba kind độc lập, lỗi của một kind không hủy các kind còn lại
func (s *associationService) ReplaceAll(ctx context.Context, wrestlerID int64, sel wrestlermodel.Selection) error {
	var g errgroup.Group
	for _, kind := range entitymodel.RelatedKinds {
		g.Go(func() error {
			return s.ReplaceAssociations(ctx, wrestlerID, kind, sel.IDs(kind))
		})
	}
	return g.Wait()
}

// ==================== COUNTS ====================

func (s *associationService) CountAssociated(ctx context.Context, entityID int64, kind entitymodel.Kind) (int, error) {
	if _, err := model.JunctionFor(kind); err != nil {
		return 0, err
	}

	n, err := s.repo.Count(ctx, kind, entityID)
	if err != nil {
		log.Error().Err(err).Int64("id", entityID).Str("kind", string(kind)).Msg("failed to count wrestlers")
		return 0, entitymodel.NewStoreFailure("count wrestlers of", kind, err)
	}
	return n, nil
}

func (s *associationService) CountsByEntity(ctx context.Context, kind entitymodel.Kind) (map[int64]int, error) {
	if _, err := model.JunctionFor(kind); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountAll(ctx, kind)
	if err != nil {
		return nil, entitymodel.NewStoreFailure("count wrestlers of", kind, err)
	}
	return counts, nil
}

// ==================== ENTITY → WRESTLERS ====================

func (s *associationService) AssociatedWrestlers(ctx context.Context, entityID int64, kind entitymodel.Kind) ([]wrestlermodel.Wrestler, error) {
	if _, err := model.JunctionFor(kind); err != nil {
		return nil, err
	}

	wrestlerIDs, err := s.repo.WrestlerIDs(ctx, kind, entityID)
	if err != nil {
		log.Error().Err(err).Int64("id", entityID).Str("kind", string(kind)).Msg("failed to load wrestler ids")
		return nil, entitymodel.NewStoreFailure("load wrestlers of", kind, err)
	}
	if len(wrestlerIDs) == 0 {
		return []wrestlermodel.Wrestler{}, nil
	}

	base, err := s.entities.GetByIDs(ctx, entitymodel.KindWrestler, model.UniqueIDs(wrestlerIDs))
	if err != nil {
		return nil, entitymodel.NewStoreFailure("load wrestlers of", kind, err)
	}
	listing.SortByNameAsc(base, entityName)

	return s.Enrich(ctx, base)
}

// Enrich load ba kind song song; mỗi kind một query junction và một batch lookup
func (s *associationService) Enrich(ctx context.Context, base []entitymodel.Entity) ([]wrestlermodel.Wrestler, error) {
	out := make([]wrestlermodel.Wrestler, len(base))
	ids := make([]int64, len(base))
	for i, e := range base {
		out[i] = wrestlermodel.NewWrestler(e)
		ids[i] = e.ID
	}
	if len(base) == 0 {
		return out, nil
	}

	related := make([]map[int64][]entitymodel.Entity, len(entitymodel.RelatedKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range entitymodel.RelatedKinds {
		g.Go(func() error {
			m, err := s.relatedByWrestler(gctx, kind, ids)
			if err != nil {
				return err
			}
			related[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, kind := range entitymodel.RelatedKinds {
		for j := range out {
			out[j].SetRelated(kind, related[i][out[j].ID])
		}
	}
	return out, nil
}

func (s *associationService) relatedByWrestler(ctx context.Context, kind entitymodel.Kind, wrestlerIDs []int64) (map[int64][]entitymodel.Entity, error) {
	idsByWrestler, err := s.repo.RelatedIDsByWrestlers(ctx, kind, wrestlerIDs)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to load associations")
		return nil, entitymodel.NewStoreFailure("load", kind, err)
	}

	var union []int64
	for _, ids := range idsByWrestler {
		union = append(union, ids...)
	}
	union = model.UniqueIDs(union)

	out := make(map[int64][]entitymodel.Entity, len(idsByWrestler))
	if len(union) == 0 {
		return out, nil
	}

	entities, err := s.entities.GetByIDs(ctx, kind, union)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to load associated entities")
		return nil, entitymodel.NewStoreFailure("load", kind, err)
	}
	byID := make(map[int64]entitymodel.Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	for wrestlerID, ids := range idsByWrestler {
		list := make([]entitymodel.Entity, 0, len(ids))
		for _, id := range model.UniqueIDs(ids) {
			if e, ok := byID[id]; ok {
				list = append(list, e)
			}
		}
		listing.SortByNameAsc(list, entityName)
		out[wrestlerID] = list
	}
	return out, nil
}
