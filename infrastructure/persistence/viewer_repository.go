package persistence

import (
	"context"
	"database/sql"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// ViewerRepository reads accounts owned by the identity collaborator.
type ViewerRepository struct {
	db *sql.DB
}

func NewViewerRepository(db *sql.DB) repository.IViewer { return &ViewerRepository{db: db} }

func (r *ViewerRepository) GetByUserName(ctx context.Context, userName string) (model.Viewer, error) {
	var v model.Viewer
	row := r.db.QueryRowContext(ctx, `SELECT v.id, v.name, v.user_name, v.password, v.role, v.status, v.created_at, v.updated_at
	FROM viewers AS v
	WHERE v.user_name = $1`, userName)
	if err := row.Scan(&v.ID, &v.Name, &v.UserName, &v.Password, &v.Role, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Error("query viewer by username failed")
		}
		return v, err
	}
	return v, nil
}
