package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradekart/backend/internal/domain/catalog"
	"github.com/tradekart/backend/internal/domain/shared"
	"github.com/tradekart/backend/pkg/slug"
)

// CategoryService orchestrates category mutations and reads. Every mutation
// runs its validation reads and its write inside a single transaction; domain
// events are published after the transaction commits, and a publish failure
// never affects the mutation result.
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	productRepo    catalog.ProductRepository
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
	eventPublisher shared.EventPublisher,
) *CategoryService {
	return &CategoryService{
		categoryRepo:   categoryRepo,
		productRepo:    productRepo,
		txManager:      txManager,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if req.ParentID != nil {
			if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
				if shared.IsNotFound(err) {
					return shared.NewDomainError(shared.CodeNotFound, "Parent category not found")
				}
				return err
			}
		}

		exists, err := s.categoryRepo.ExistsSiblingName(ctx, req.Name, req.ParentID, nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists under the same parent")
		}

		slugSource := req.Slug
		if slugSource == "" {
			slugSource = req.Name
		}
		slugValue, err := s.deriveUniqueSlug(ctx, slugSource, nil)
		if err != nil {
			return err
		}

		category, err = catalog.NewCategory(req.Name, slugValue, req.ParentID)
		if err != nil {
			return err
		}

		if req.Description != "" {
			category.SetDescription(req.Description)
		}
		if req.MetaTitle != "" || req.MetaDescription != "" {
			category.SetMeta(req.MetaTitle, req.MetaDescription)
		}
		if req.Icon != "" {
			if err := category.SetIcon(req.Icon); err != nil {
				return err
			}
		}
		if req.Color != "" {
			if err := category.SetColor(req.Color); err != nil {
				return err
			}
		}
		if req.Image != "" {
			category.SetImage(req.Image)
		}
		if req.DisplayOrder != nil {
			category.SetDisplayOrder(*req.DisplayOrder)
		}
		if req.IsActive != nil && !*req.IsActive {
			category.SetActive(false)
		}

		return s.categoryRepo.Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, category)

	return ToCategoryResponse(category), nil
}

// Update applies a partial update to a category, including reparenting.
// Sibling name uniqueness is re-validated whenever the name or the parent
// changes; an explicitly supplied slug is unique-ified before use; a parent
// change passes the cycle guard first.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		var changed []string

		newParent := category.ParentID
		parentChanged := false
		if req.ParentID.Set {
			if req.ParentID.Valid {
				target := req.ParentID.UUID
				if category.ParentID == nil || *category.ParentID != target {
					newParent = &target
					parentChanged = true
				}
			} else if category.ParentID != nil {
				// Explicit null moves the category to the root
				newParent = nil
				parentChanged = true
			}
		}
		if parentChanged {
			if err := s.validateReparent(ctx, category.ID, newParent); err != nil {
				return err
			}
		}

		newName := category.Name
		nameChanged := req.Name != nil && *req.Name != category.Name
		if nameChanged {
			newName = *req.Name
		}

		if nameChanged || parentChanged {
			exists, err := s.categoryRepo.ExistsSiblingName(ctx, newName, newParent, &category.ID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists under the same parent")
			}
		}

		if nameChanged {
			if err := category.Rename(newName); err != nil {
				return err
			}
			changed = append(changed, "name")
		}
		if parentChanged {
			category.SetParent(newParent)
			changed = append(changed, "parentId")
		}
		if req.Slug != nil && *req.Slug != category.Slug {
			slugValue, err := s.deriveUniqueSlug(ctx, *req.Slug, &category.ID)
			if err != nil {
				return err
			}
			if slugValue != category.Slug {
				category.SetSlug(slugValue)
				changed = append(changed, "slug")
			}
		}
		if req.Description != nil && *req.Description != category.Description {
			category.SetDescription(*req.Description)
			changed = append(changed, "description")
		}
		if req.MetaTitle != nil && *req.MetaTitle != category.MetaTitle {
			category.SetMeta(*req.MetaTitle, category.MetaDescription)
			changed = append(changed, "metaTitle")
		}
		if req.MetaDescription != nil && *req.MetaDescription != category.MetaDescription {
			category.SetMeta(category.MetaTitle, *req.MetaDescription)
			changed = append(changed, "metaDescription")
		}
		if req.Icon != nil && *req.Icon != category.Icon {
			if err := category.SetIcon(*req.Icon); err != nil {
				return err
			}
			changed = append(changed, "icon")
		}
		if req.Color != nil && *req.Color != category.Color {
			if err := category.SetColor(*req.Color); err != nil {
				return err
			}
			changed = append(changed, "color")
		}
		if req.Image != nil && *req.Image != category.Image {
			category.SetImage(*req.Image)
			changed = append(changed, "image")
		}
		if req.DisplayOrder != nil && *req.DisplayOrder != category.DisplayOrder {
			category.SetDisplayOrder(*req.DisplayOrder)
			changed = append(changed, "displayOrder")
		}
		if req.IsActive != nil && *req.IsActive != category.IsActive {
			category.SetActive(*req.IsActive)
			changed = append(changed, "isActive")
		}

		if len(changed) == 0 {
			return nil
		}

		category.AddDomainEvent(catalog.NewCategoryUpdatedEvent(category, changed))
		return s.categoryRepo.Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, category)

	return ToCategoryResponse(category), nil
}

// Delete deletes a category. A category with children or with any attached
// product, available or not, cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var category *catalog.Category

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
		if err != nil {
			return err
		}
		if hasChildren {
			return shared.NewDomainError(shared.CodeHasChildren, "Cannot delete category with child categories")
		}

		productCount, err := s.productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if productCount > 0 {
			return shared.NewDomainError(shared.CodeHasProducts, "Cannot delete category with associated products")
		}

		return s.categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewCategoryDeletedEvent(category))
	}

	return nil
}

// Reorder applies a batch of display-order changes atomically. Either every
// listed category is repositioned or none is; categories not listed keep
// their current order.
func (s *CategoryService) Reorder(ctx context.Context, req ReorderCategoriesRequest) error {
	ids := make([]uuid.UUID, len(req.Items))
	updates := make([]catalog.DisplayOrderUpdate, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for i, item := range req.Items {
		if seen[item.ID] {
			return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Category %s listed more than once", item.ID))
		}
		seen[item.ID] = true
		ids[i] = item.ID
		updates[i] = catalog.DisplayOrderUpdate{
			CategoryID:   item.ID,
			DisplayOrder: item.DisplayOrder,
		}
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.categoryRepo.ExistingIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if !existing[id] {
				return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Category %s not found", id))
			}
		}

		return s.categoryRepo.UpdateDisplayOrders(ctx, updates)
	})
	if err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewCategoriesReorderedEvent(ids))
	}

	return nil
}

// GetTree returns the full category tree with aggregated available-product
// counts. With activeOnly set, inactive subtrees are pruned after counting,
// so visible aggregates still include products of hidden descendants.
func (s *CategoryService) GetTree(ctx context.Context, activeOnly bool) ([]catalog.TreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.productRepo.CountAvailableByCategory(ctx)
	if err != nil {
		return nil, err
	}

	tree := catalog.BuildTree(categories, counts)
	if activeOnly {
		tree = catalog.FilterActive(tree)
	}
	return tree, nil
}

// GetByID returns one category with its direct available-product count and
// shallow parent/children references
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryDetailResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountAvailableForCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &CategoryDetailResponse{
		CategoryResponse: *ToCategoryResponse(category),
		ProductCount:     productCount,
		Children:         make([]CategorySummary, 0, len(children)),
	}
	for i := range children {
		detail.Children = append(detail.Children, ToCategorySummary(&children[i]))
	}

	if category.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *category.ParentID)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if parent != nil {
			summary := ToCategorySummary(parent)
			detail.Parent = &summary
		}
	}

	return detail, nil
}

// List returns a paginated flat category list with search and status filters
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) (*shared.Paginated[CategoryListResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["is_active"] = filter.Status == "active"
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = "asc"
		if filter.OrderDir == "desc" {
			domainFilter.OrderDir = "desc"
		}
	} else {
		domainFilter.OrderBy = "display_order"
		domainFilter.OrderDir = "asc"
	}

	categories, err := s.categoryRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.categoryRepo.CountFiltered(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCategoryListResponses(categories), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// deriveUniqueSlug turns source into a slug and disambiguates it with -2,
// -3, ... suffixes until no other category holds it
func (s *CategoryService) deriveUniqueSlug(ctx context.Context, source string, excludeID *uuid.UUID) (string, error) {
	base := slug.From(source)
	if base == "" {
		base = "category"
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := s.categoryRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// validateReparent rejects parent assignments that would disconnect or loop
// the tree. The ancestor walk is bounded by the total category count; a
// longer chain means the stored tree itself is cyclic, which is reported as
// a data-integrity fault rather than a request error.
func (s *CategoryService) validateReparent(ctx context.Context, categoryID uuid.UUID, newParentID *uuid.UUID) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == categoryID {
		return shared.NewDomainError(shared.CodeCircularReference, "Category cannot be its own parent")
	}

	parent, err := s.categoryRepo.FindByID(ctx, *newParentID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError(shared.CodeNotFound, "Parent category not found")
		}
		return err
	}

	bound, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return err
	}

	current := parent
	for steps := int64(0); current.ParentID != nil; steps++ {
		if steps >= bound {
			return shared.NewDomainError(shared.CodeDataIntegrity, "Category ancestry longer than category count")
		}
		if *current.ParentID == categoryID {
			return shared.NewDomainError(shared.CodeCircularReference, "Cannot move category under its own descendant")
		}
		current, err = s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if shared.IsNotFound(err) {
				// Dangling ancestor reference ends the chain
				return nil
			}
			return err
		}
	}

	return nil
}

func (s *CategoryService) publishEvents(ctx context.Context, category *catalog.Category) {
	if s.eventPublisher == nil || category == nil {
		return
	}
	events := category.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	category.ClearDomainEvents()
}
