package server

import (
	"encoding/json"
	"net/http"

	"github.com/artefact/buzz-dashboard/internal/notifications"
	"github.com/artefact/buzz-dashboard/internal/tagging"
)

type draftResponse struct {
	Draft     tagging.Draft  `json:"draft"`
	StepLabel string         `json:"step_label"`
	Review    tagging.Review `json:"review"`
	Error     string         `json:"error,omitempty"`
}

func (s *Server) draftResponse(d tagging.Draft) draftResponse {
	return draftResponse{
		Draft:     d,
		StepLabel: d.Step.String(),
		Review:    tagging.BuildReview(d, s.now()),
	}
}

// taggingCatalog handles GET /api/tagging/catalog
func (s *Server) taggingCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tagging.WizardCatalog())
}

// getDraft handles GET /api/tagging/draft
func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.draftResponse(s.view(sess.ID).draft))
}

// applyDraftAction handles POST /api/tagging/draft/actions. A rejected action leaves
// the draft as it was and the response carries both the error and the unchanged draft.
func (s *Server) applyDraftAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var req tagging.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := tagging.ParseAction(req)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var draft tagging.Draft
	err = s.update(sess.ID, func(ws *workspace) error {
		next, err := tagging.Reduce(ws.draft, action, s.now())
		if err == nil {
			ws.draft = next
		}
		draft = ws.draft
		return err
	})

	resp := s.draftResponse(draft)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// submitDraft handles POST /api/tagging/draft/submit
func (s *Server) submitDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var receipt tagging.Receipt
	err := s.update(sess.ID, func(ws *workspace) error {
		rc, next, err := tagging.Submit(ws.draft, s.now())
		if err != nil {
			return err
		}
		receipt = rc
		ws.draft = next
		return nil
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	s.notify("submission", func(n notifications.NotificationInterface) error {
		return n.SendSubmission(&receipt)
	})

	writeJSON(w, http.StatusCreated, receipt)
}
