package api

import (
	"strconv"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errInvalidParam = errs.Mark(errs.New("invalid parameter"), errs.ErrBadRequest)

func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Wrapf(errInvalidParam, "%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrapf(errInvalidParam, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// pageFrom reads from/size. Oversized pages are clamped, not rejected.
func pageFrom(c *gin.Context, cfg config.PagingConfig) (shared.Page, error) {
	defSize := cfg.DefaultSize
	if defSize <= 0 {
		defSize = shared.DefaultPageSize
	}
	from, err := queryInt(c, "from", 0)
	if err != nil {
		return shared.Page{}, err
	}
	size, err := queryInt(c, "size", defSize)
	if err != nil {
		return shared.Page{}, err
	}
	if cfg.MaxSize > 0 && size > cfg.MaxSize {
		size = cfg.MaxSize
	}
	return shared.NewPage(from, size)
}

// Routes behind the identity middleware never see this; it guards wiring mistakes.
var errNoIdentity = errs.New("caller identity missing from context")
