package utils

import (
	"context"

	"sla-mart/pkg/contextkeys"
	apperrors "sla-mart/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}
