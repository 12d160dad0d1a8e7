package dto

import (
	"context"

	"stayengine/shared/constant"
)

// Actor is the authenticated caller a service operation is performed on behalf of.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsZero() bool {
	return a.UserID == ""
}

func (a Actor) IsSystem() bool {
	return a.UserID == constant.ActorSystem
}

// SystemActor is used by internal entry points such as payment webhooks and scheduled sweeps.
func SystemActor() Actor {
	return Actor{UserID: constant.ActorSystem, Role: constant.ActorSystem}
}

// ActorFromContext reads the identity placed on the request context by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{UserID: userID, Role: role}
}
