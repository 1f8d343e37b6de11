package http

import (
	"fmt"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, bindError{err: fmt.Errorf("invalid format for parameter %s: %w", name, err)}
	}
	out, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, bindError{err: fmt.Errorf("parameter %s: %w", name, err)}
	}
	return out, nil
}

// pathUUIDs binds several uuid path parameters in order.
func pathUUIDs(ctx echo.Context, names ...string) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(names))
	for _, name := range names {
		id, err := pathUUID(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func pathInt(ctx echo.Context, name string) (int, error) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, bindError{err: fmt.Errorf("invalid format for parameter %s: %w", name, err)}
	}
	return v, nil
}

func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return bindError{err: fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}
