/*
Package handler provides HTTP handlers for the pull-based notification API.

The real-time push (the `notification` WebSocket event) is best-effort; these
endpoints are how a client reconciles on load: list the durable records and
flip read flags.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"meetrix/internal/pkg/auth/jwt"
	"meetrix/internal/pkg/errs"
	"meetrix/internal/pkg/logx"
	"meetrix/internal/pkg/resp"
)

// HandleListNotifications returns the authenticated user's most recent
// notifications, newest first, together with the unread count.
func HandleListNotifications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		notifications, unreadCount, err := deps.Notifications.List(r.Context(), payload.ID)
		if err != nil {
			logx.Error(err, "Failed to list notifications", "user_id", payload.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		data := map[string]any{
			"notifications": notifications,
			"unreadCount":   unreadCount,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleMarkNotificationRead flags one notification as read, scoped to the
// authenticated user so nobody can flip another user's records.
func HandleMarkNotificationRead(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		notificationID := chi.URLParam(r, "id")
		if notificationID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		found, err := deps.Notifications.MarkRead(r.Context(), notificationID, payload.ID)
		if err != nil {
			logx.Error(err, "Failed to mark notification read",
				"user_id", payload.ID,
				"notification_id", notificationID,
			)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if !found {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotificationNotFound))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleMarkAllNotificationsRead flags every unread notification of the
// authenticated user as read.
func HandleMarkAllNotificationsRead(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Notifications.MarkAllRead(r.Context(), payload.ID); err != nil {
			logx.Error(err, "Failed to mark all notifications read", "user_id", payload.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
