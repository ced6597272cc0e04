package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/views"
)

// getUpload answers with data null when nothing was uploaded yet.
func (httpserver *HttpServer) getUpload(w http.ResponseWriter, r *http.Request) {
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
	sub, err := st.Submission(chi.URLParam(r, "uploadId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	wg, err := httpserver.resolveWorkgroup(ctx, r, claims)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	record, err := httpserver.submSrvc.GetUpload(ctx, wg.ID, sub.UploadID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, record)
}

func (httpserver *HttpServer) getSubmissions(w http.ResponseWriter, r *http.Request) {
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

	slots, err := httpserver.submSrvc.ListUploads(ctx, st.ID, wg.ID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	canUpload := st.Availability(httpserver.now(), wg.HasMember(claims.UserID)).Allowed()
	html, err := views.Submissions(st.ID, slots, canUpload)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	writeHtml(w, html)
}
