package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/usecase"
)

const (
	defaultLimit = 100
)

func pathID(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s: %w", name, usecase.ErrInvalidArgument)
	}
	return v, nil
}

func int64Query(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("missing or malformed %s: %w", name, usecase.ErrInvalidArgument)
	}
	return v, nil
}

func optFloatQuery(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed %s: %w", name, usecase.ErrInvalidArgument)
	}
	return &v, nil
}

func optIntQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed %s: %w", name, usecase.ErrInvalidArgument)
	}
	return &v, nil
}

func rowFilterQuery(r *http.Request) (entity.RowFilter, error) {
	var f entity.RowFilter
	var err error

	f.Search = r.URL.Query().Get("search")
	f.SearchMode = entity.SearchMode(r.URL.Query().Get("search_mode"))
	if f.SearchMode == "" {
		f.SearchMode = entity.SearchContains
	}

	if f.MinPrice, err = optFloatQuery(r, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optFloatQuery(r, "max_price"); err != nil {
		return f, err
	}
	if f.MinLength, err = optIntQuery(r, "min_length"); err != nil {
		return f, err
	}
	if f.MaxLength, err = optIntQuery(r, "max_length"); err != nil {
		return f, err
	}
	return f, nil
}

func sortQuery(r *http.Request) entity.Sort {
	return entity.Sort{
		Column:    entity.SortColumn(r.URL.Query().Get("sort_col")),
		Direction: entity.SortDirection(r.URL.Query().Get("sort_dir")),
	}
}

func windowQuery(r *http.Request) (entity.Window, error) {
	w := entity.Window{Limit: defaultLimit}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return w, fmt.Errorf("malformed offset: %w", usecase.ErrInvalidArgument)
		}
		w.Offset = v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return w, fmt.Errorf("malformed limit: %w", usecase.ErrInvalidArgument)
		}
		w.Limit = v
	}
	return w, nil
}
