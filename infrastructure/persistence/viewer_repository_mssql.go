package persistence

import (
	"context"
	"database/sql"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// ViewerRepositoryMSSQL is the SQL Server implementation of IViewer.
type ViewerRepositoryMSSQL struct{ db *sql.DB }

func NewViewerRepositoryMSSQL(db *sql.DB) repository.IViewer { return &ViewerRepositoryMSSQL{db} }

func (r *ViewerRepositoryMSSQL) GetByUserName(ctx context.Context, userName string) (model.Viewer, error) {
	var v model.Viewer
	row := r.db.QueryRowContext(ctx, `SELECT id, name, user_name, password, role, status, created_at, updated_at
	FROM dbo.[viewers] WHERE user_name = @p1`, userName)
	if err := row.Scan(&v.ID, &v.Name, &v.UserName, &v.Password, &v.Role, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Error("mssql: query viewer by username failed")
		}
		return v, err
	}
	return v, nil
}
