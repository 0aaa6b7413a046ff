package resources

import (
	"context"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
)

type ResourceUseCase interface {
	List(ctx context.Context) ([]domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	Create(ctx context.Context, ident domain.Identity, resource *domain.Resource) error
	Update(ctx context.Context, ident domain.Identity, resource *domain.Resource) error
	Delete(ctx context.Context, ident domain.Identity, id int64) error
}

type ResourceCache interface {
	GetResources(ctx context.Context) ([]domain.Resource, error)
	SetResources(ctx context.Context, resources []domain.Resource) error
	InvalidateResources(ctx context.Context) error
}

type ResourceService struct {
	repo  repository.ResourceRepository
	cache ResourceCache
}

func NewResourceService(repo repository.ResourceRepository, cache ResourceCache) *ResourceService {
	return &ResourceService{repo: repo, cache: cache}
}

func (s *ResourceService) List(ctx context.Context) ([]domain.Resource, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetResources(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetResources(ctx, resources)
	}
	return resources, nil
}

func (s *ResourceService) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	return s.repo.GetByID(ctx, id)
}

// Rates are administrator-only inputs; agents do not edit resources.
func (s *ResourceService) Create(ctx context.Context, ident domain.Identity, resource *domain.Resource) error {
	if ident.Role != domain.RoleAdmin {
		return &domain.AuthorizationError{Reason: "requires administrator privileges"}
	}
	if err := s.repo.Create(ctx, resource); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ResourceService) Update(ctx context.Context, ident domain.Identity, resource *domain.Resource) error {
	if ident.Role != domain.RoleAdmin {
		return &domain.AuthorizationError{Reason: "requires administrator privileges"}
	}
	if err := s.repo.Update(ctx, resource); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ResourceService) Delete(ctx context.Context, ident domain.Identity, id int64) error {
	if ident.Role != domain.RoleAdmin {
		return &domain.AuthorizationError{Reason: "requires administrator privileges"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ResourceService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateResources(ctx)
	}
}

var _ ResourceUseCase = (*ResourceService)(nil)
