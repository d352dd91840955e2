package repository

import (
	"context"

	"streamhaven/domain/model"
)

// IViewer is the narrow read interface onto the identity/account collaborator.
type IViewer interface {
	GetByUserName(ctx context.Context, userName string) (model.Viewer, error)
}
