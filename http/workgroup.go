package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jawad-khan/xblock-group-project-v2/auth"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
)

// resolveWorkgroup returns the group the request is about. Staff may pick
// any group with ?group_id=, everybody else gets their own group.
func (httpserver *HttpServer) resolveWorkgroup(ctx context.Context, r *http.Request, claims *auth.JwtClaims) (projectapi.Workgroup, error) {
	if groupIDStr := r.URL.Query().Get("group_id"); groupIDStr != "" && claims.Staff {
		groupID, err := strconv.Atoi(groupIDStr)
		if err != nil {
			return projectapi.Workgroup{}, ErrInvalidGroupID()
		}
		return httpserver.project.GetWorkgroupByID(ctx, groupID)
	}

	wg, err := httpserver.project.GetUserWorkgroup(ctx, claims.UserID, httpserver.activity.ProjectID)
	if err != nil {
		return projectapi.Workgroup{}, err
	}
	if wg == nil {
		return projectapi.Workgroup{}, ErrNoWorkgroup()
	}
	return *wg, nil
}

func requireClaims(r *http.Request) (*auth.JwtClaims, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil, ErrJwtTokenMissing()
	}
	return claims, nil
}

func writeHtml(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
