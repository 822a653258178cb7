package service

import (
	"context"

	"github.com/rs/zerolog/log"

	assocservice "wrestling-admin/internal/domains/association/service"
	entitymodel "wrestling-admin/internal/domains/entity/model"
	entityservice "wrestling-admin/internal/domains/entity/service"
	"wrestling-admin/internal/domains/wrestler/model"
)

type wrestlerService struct {
	entities     entityservice.ServiceInterface
	associations assocservice.ServiceInterface
}

func NewWrestlerService(entities entityservice.ServiceInterface, associations assocservice.ServiceInterface) ServiceInterface {
	return &wrestlerService{
		entities:     entities,
		associations: associations,
	}
}

// ==================== READ ====================

func (s *wrestlerService) List(ctx context.Context, filter model.Filter) *model.ListResult {
	base := s.entities.List(ctx, entitymodel.KindWrestler)

	all, err := s.associations.Enrich(ctx, base)
	if err != nil {
		log.Error().Err(err).Int("count", len(base)).Msg("failed to load wrestler relations")
		all = []model.Wrestler{}
	}

	wrestlers := filter.Apply(all)
	return &model.ListResult{
		Wrestlers:     wrestlers,
		FilterOptions: model.BuildOptions(all),
		Total:         len(wrestlers),
	}
}

func (s *wrestlerService) Get(ctx context.Context, id int64) (*model.Wrestler, error) {
	base, err := s.entities.Get(ctx, entitymodel.KindWrestler, id)
	if err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, *base)
}

// ==================== WRITE ====================

func (s *wrestlerService) Create(ctx context.Context, req *model.SaveRequest) (*model.Wrestler, error) {
	if req == nil {
		req = &model.SaveRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, entitymodel.NewValidationError(err)
	}

	created, err := s.entities.Create(ctx, entitymodel.KindWrestler, &req.SaveRequest)
	if err != nil {
		return nil, err
	}

	if !req.Selection.IsEmpty() {
		if err := s.associations.ReplaceAll(ctx, created.ID, req.Selection); err != nil {
			log.Error().Err(err).Int64("wrestler_id", created.ID).Msg("wrestler created but relations were not saved")
			return nil, err
		}
	}

	log.Info().Int64("wrestler_id", created.ID).Msg("wrestler created")
	return s.enrichOne(ctx, *created)
}

func (s *wrestlerService) Update(ctx context.Context, id int64, req *model.SaveRequest) (*model.Wrestler, error) {
	if req == nil {
		req = &model.SaveRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, entitymodel.NewValidationError(err)
	}

	updated, err := s.entities.Update(ctx, entitymodel.KindWrestler, id, &req.SaveRequest)
	if err != nil {
		return nil, err
	}

	if err := s.associations.ReplaceAll(ctx, id, req.Selection); err != nil {
		log.Error().Err(err).Int64("wrestler_id", id).Msg("wrestler updated but relations were not saved")
		return nil, err
	}

	return s.enrichOne(ctx, *updated)
}

// Delete: junction rows đi theo ON DELETE CASCADE của schema
func (s *wrestlerService) Delete(ctx context.Context, id int64) error {
	return s.entities.Delete(ctx, entitymodel.KindWrestler, id)
}

func (s *wrestlerService) enrichOne(ctx context.Context, base entitymodel.Entity) (*model.Wrestler, error) {
	list, err := s.associations.Enrich(ctx, []entitymodel.Entity{base})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}
