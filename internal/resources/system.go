package resources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/backoffice/pkg/listing"
	"github.com/JaimeStill/backoffice/pkg/pagination"
	"github.com/JaimeStill/backoffice/pkg/record"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

// Client is the subset of the content API client used by resources.
type Client interface {
	List(ctx context.Context, path string) ([]record.Record, error)
	Fetch(ctx context.Context, path string) (record.Record, error)
	Post(ctx context.Context, path string, payload any) (record.Record, error)
}

// Downloader fetches raw files from the content API.
type Downloader interface {
	Download(ctx context.Context, path string) (*upstream.Blob, error)
}

// System defines the resource catalog and its operations. Each call takes
// the client bound to the caller's credentials.
type System interface {
	Catalog() []Definition
	Definition(name string) (Definition, error)
	List(ctx context.Context, client Client, name string, page pagination.PageRequest) (*listing.View[record.Record], error)
	Find(ctx context.Context, client Client, name, id string) (record.Record, error)
	Count(ctx context.Context, client Client, name string) (int, error)
	Delete(ctx context.Context, client Client, name, id string) error
	Toggle(ctx context.Context, client Client, name, id string, active *bool) (record.Record, error)
	Resume(ctx context.Context, client Downloader, name, id string) (*upstream.Blob, error)
}

type catalogSystem struct {
	definitions []Definition
	logger      *slog.Logger
	pagination  pagination.Config
}

// New creates a System over the built-in catalog.
func New(logger *slog.Logger, pagination pagination.Config) System {
	return &catalogSystem{
		definitions: Catalog(),
		logger:      logger.With("system", "resources"),
		pagination:  pagination,
	}
}

func (s *catalogSystem) Catalog() []Definition {
	return s.definitions
}

func (s *catalogSystem) Definition(name string) (Definition, error) {
	for _, d := range s.definitions {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%s: %w", name, ErrResourceNotFound)
}

func (s *catalogSystem) List(ctx context.Context, client Client, name string, page pagination.PageRequest) (*listing.View[record.Record], error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	records, err := client.List(ctx, def.Endpoints.List)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", name, err)
	}

	cfg := s.pagination
	cfg.DefaultPageSize = def.PageSize
	page.Normalize(cfg)

	ctrl := listing.New(records, listing.Config[record.Record]{
		SearchFields: def.SearchFields,
		SortFields:   def.SortFields,
		PageSize:     page.PageSize,
	})
	ctrl.SetQuery(page.Query())
	if len(page.Sort) > 0 {
		dir := listing.Ascending
		if page.Sort[0].Descending {
			dir = listing.Descending
		}
		ctrl.SortBy(page.Sort[0].Field, dir)
	}
	ctrl.SetPage(page.Page)

	view := ctrl.View()
	return &view, nil
}

func (s *catalogSystem) Find(ctx context.Context, client Client, name, id string) (record.Record, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	if def.Endpoints.Find != "" {
		path, _ := def.Path(OpFind, id)
		rec, err := client.Fetch(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("find %s %s: %w", name, id, err)
		}
		if len(rec) == 0 {
			return nil, fmt.Errorf("%s %s: %w", name, id, ErrNotFound)
		}
		return rec, nil
	}

	records, err := client.List(ctx, def.Endpoints.List)
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", name, id, err)
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", name, id, ErrNotFound)
}

func (s *catalogSystem) Count(ctx context.Context, client Client, name string) (int, error) {
	def, err := s.Definition(name)
	if err != nil {
		return 0, err
	}

	records, err := client.List(ctx, def.Endpoints.List)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return len(records), nil
}

func (s *catalogSystem) Delete(ctx context.Context, client Client, name, id string) error {
	def, err := s.Definition(name)
	if err != nil {
		return err
	}

	path, err := def.Path(OpDelete, id)
	if err != nil {
		return err
	}

	if _, err := client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", name, id, err)
	}

	s.logger.Info("record deleted", "resource", name, "id", id)
	return nil
}

// Toggle sets is_active on the record. A nil active flips the current value.
func (s *catalogSystem) Toggle(ctx context.Context, client Client, name, id string, active *bool) (record.Record, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	path, err := def.Path(OpToggle, id)
	if err != nil {
		return nil, err
	}

	if active == nil {
		rec, err := s.Find(ctx, client, name, id)
		if err != nil {
			return nil, err
		}
		next := !rec.Bool("is_active")
		active = &next
	}

	resp, err := client.Post(ctx, path, map[string]bool{"is_active": *active})
	if err != nil {
		return nil, fmt.Errorf("toggle %s %s: %w", name, id, err)
	}

	s.logger.Info("record toggled", "resource", name, "id", id, "is_active", *active)
	return resp, nil
}

// Resume downloads the file attached to an application. The name defaults
// to resume-<id>.pdf when the content API does not supply one.
func (s *catalogSystem) Resume(ctx context.Context, client Downloader, name, id string) (*upstream.Blob, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	path, err := def.Path(OpResume, id)
	if err != nil {
		return nil, err
	}

	blob, err := client.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("resume %s %s: %w", name, id, err)
	}
	if blob.Name == "" {
		blob.Name = fmt.Sprintf("resume-%s.pdf", id)
	}
	return blob, nil
}
