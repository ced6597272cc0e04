package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/stage"
	"github.com/jawad-khan/xblock-group-project-v2/views"
)

type stageStateResponse struct {
	StageID   string      `json:"stage_id"`
	Name      string      `json:"name"`
	Type      stage.Type  `json:"type"`
	State     stage.State `json:"state"`
	GroupID   int         `json:"group_id"`
	Open      bool        `json:"open"`
	Closed    bool        `json:"closed"`
	CanUpload bool        `json:"can_upload"`
}

func (httpserver *HttpServer) getStageState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	st, err := httpserver.activity.Stage(chi.URLParam(r, "stageId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	wg, err := httpserver.resolveWorkgroup(ctx, r, claims)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	state, err := httpserver.submSrvc.StageState(ctx, st.ID, wg)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	avail := st.Availability(httpserver.now(), wg.HasMember(claims.UserID))
	httpjson.WriteSuccessJson(w, stageStateResponse{
		StageID:   st.ID,
		Name:      st.Name,
		Type:      st.Type,
		State:     state,
		GroupID:   wg.ID,
		Open:      avail.Open,
		Closed:    avail.Closed,
		CanUpload: st.Type == stage.TypeSubmission && avail.Allowed(),
	})
}

func (httpserver *HttpServer) getResources(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	st, err := httpserver.activity.Stage(chi.URLParam(r, "stageId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	resources, err := views.Resources(st)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	help, err := views.Help(httpserver.activity, st)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	writeHtml(w, resources+help)
}
