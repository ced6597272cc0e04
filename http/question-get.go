package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jawad-khan/xblock-group-project-v2/feedback"
	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/views"
)

// getQuestion renders a review question, disabled once the stage closed.
func (httpserver *HttpServer) getQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	st, err := httpserver.activity.Stage(chi.URLParam(r, "stageId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	q, err := st.Question(chi.URLParam(r, "questionId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	html, err := views.Question(ctx, q, st.IsClosed(httpserver.now()))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	writeHtml(w, html)
}

func (httpserver *HttpServer) getAssessment(w http.ResponseWriter, r *http.Request) {
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
	display, err := st.FeedbackDisplay(chi.URLParam(r, "displayId"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	wg, err := httpserver.resolveWorkgroup(ctx, r, claims)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	viewer := feedback.Viewer{UserID: claims.UserID, Staff: claims.Staff}
	assessment, err := httpserver.feedbackSrvc.Evaluate(ctx, display, viewer, wg.ID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	html, err := views.Assessment(assessment)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	writeHtml(w, html)
}
