package pgstore

import (
	"context"

	"github.com/netman-app/authkit/svc/auth"
)

type grants struct{ q querier }

func (r grants) CreateModules(ctx context.Context, identityID int64, g auth.ModuleGrant) error {
	_, err := r.q.ExecContext(ctx, qCreateModules, identityID,
		g.Player, g.Judge, g.Creator, g.Moderator, g.Manager, g.Admin, g.SuperAdmin)
	return mapErr(err)
}

func (r grants) CreateAttributes(ctx context.Context, identityID int64, g auth.AttributeGrant) error {
	_, err := r.q.ExecContext(ctx, qCreateAttributes, identityID, g.Read, g.Write, g.Update, g.Delete)
	return mapErr(err)
}

func (r grants) Modules(ctx context.Context, identityID int64) (auth.ModuleGrant, error) {
	return r.modules(ctx, qModules, identityID)
}

func (r grants) Attributes(ctx context.Context, identityID int64) (auth.AttributeGrant, error) {
	return r.attributes(ctx, qAttributes, identityID)
}

func (r grants) GroupOf(ctx context.Context, identityID int64) (int64, error) {
	var id int64
	if err := r.q.QueryRowContext(ctx, qGroupOf, identityID).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (r grants) GroupModules(ctx context.Context, groupID int64) (auth.ModuleGrant, error) {
	return r.modules(ctx, qGroupModules, groupID)
}

func (r grants) GroupAttributes(ctx context.Context, groupID int64) (auth.AttributeGrant, error) {
	return r.attributes(ctx, qGroupAttributes, groupID)
}

func (r grants) modules(ctx context.Context, query string, id int64) (auth.ModuleGrant, error) {
	var g auth.ModuleGrant
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&g.Player, &g.Judge, &g.Creator, &g.Moderator, &g.Manager, &g.Admin, &g.SuperAdmin,
	)
	if err != nil {
		return auth.ModuleGrant{}, mapErr(err)
	}
	return g, nil
}

func (r grants) attributes(ctx context.Context, query string, id int64) (auth.AttributeGrant, error) {
	var g auth.AttributeGrant
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&g.Read, &g.Write, &g.Update, &g.Delete); err != nil {
		return auth.AttributeGrant{}, mapErr(err)
	}
	return g, nil
}
