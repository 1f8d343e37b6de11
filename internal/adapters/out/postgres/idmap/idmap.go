// Package idmap converts between kernel.UUID and the uuid.UUID columns used
// by the gorm DTOs.
package idmap

import (
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func From(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(id)
}

// Ptr maps an optional id to a nullable column.
func Ptr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// FromPtr maps a nullable column back to an optional id.
func FromPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func Slice(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

func FromSlice(ids []uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
