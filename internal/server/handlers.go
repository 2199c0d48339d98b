package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	chirender "github.com/go-chi/render"

	"github.com/goliatone/go-signupform/pkg/form"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

const defaultResultMessage = "Form submitted"

type validateResponse struct {
	Errors    map[string][]string `json:"errors"`
	CanSubmit bool                `json:"canSubmit"`
	Actions   string              `json:"actions"`
}

type submitResponse struct {
	Message string `json:"message"`
	Payload string `json:"payload"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	draft := form.New(s.form, s.checker)
	id := s.store.Create(draft)
	s.syncDrafts()
	s.logger.Debug("draft created", "session", id, "request_id", RequestIDFrom(r.Context()))

	var body []byte
	err := s.store.With(id, func(draft *form.Form) error {
		var err error
		body, err = s.renderer.Render(r.Context(), s.form, s.renderOptions(id, draft))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, r, http.StatusOK, body)
}

// handleValidate applies the posted edit to the draft. When _field is set
// only that field is re-evaluated; otherwise every posted field is.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	id := r.PostForm.Get(render.SessionFieldName)

	var resp validateResponse
	err := s.store.With(id, func(draft *form.Form) error {
		if name := r.PostForm.Get(fieldParam); name != "" {
			if err := draft.Set(name, r.PostForm.Get(name)); err != nil {
				return err
			}
			s.observe(draft, name)
		} else {
			values := fieldValues(r.PostForm, s.form.FieldNames())
			if err := draft.Update(values); err != nil {
				return err
			}
			for name := range values {
				s.observe(draft, name)
			}
		}

		actions, err := s.renderer.RenderActions(r.Context(), s.form, s.renderOptions(id, draft))
		if err != nil {
			return err
		}
		resp = validateResponse{
			Errors:    messages(draft.Errors()),
			CanSubmit: draft.CanSubmit(),
			Actions:   string(actions),
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrSessionNotFound):
		s.writeError(w, r, http.StatusNotFound, err)
		return
	case errors.Is(err, form.ErrUnknownField):
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		s.fail(w, r, err)
		return
	}
	chirender.JSON(w, r, resp)
}

// handleSubmit re-validates every posted value. A valid draft is serialized,
// surfaced to the user and discarded; an invalid one answers 422 with all
// failures revealed.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	wantsJSON := chirender.GetAcceptedContentType(r) == chirender.ContentTypeJSON
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	id := r.PostForm.Get(render.SessionFieldName)

	var (
		snapshot   form.Snapshot
		serialized []byte
		invalid    *validateResponse
		body       []byte
	)
	err := s.store.With(id, func(draft *form.Form) error {
		if err := draft.Update(fieldValues(r.PostForm, s.form.FieldNames())); err != nil {
			return err
		}
		snap, err := draft.Submit()
		if err == nil {
			// The draft lock is held until the draft is consumed, so a
			// concurrent submit of the same session finds it gone.
			if serialized, err = snap.JSON(); err != nil {
				return err
			}
			if s.onSubmit != nil {
				if err := s.onSubmit(r.Context(), snap); err != nil {
					return fmt.Errorf("server: submit handler: %w", err)
				}
			}
			snapshot = snap
			s.store.Delete(id)
			return nil
		}
		if !errors.Is(err, form.ErrInvalid) {
			return err
		}

		for name, failure := range draft.AllErrors() {
			s.metrics.ObserveFailure(name, string(failure.Kind))
		}
		opts := s.renderOptions(id, draft)
		if !wantsJSON {
			body, err = s.renderer.Render(r.Context(), s.form, opts)
			if err != nil {
				return err
			}
		}
		actions, err := s.renderer.RenderActions(r.Context(), s.form, opts)
		if err != nil {
			return err
		}
		invalid = &validateResponse{
			Errors:    messages(draft.Errors()),
			CanSubmit: false,
			Actions:   string(actions),
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrSessionNotFound):
		if !wantsJSON {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.writeError(w, r, http.StatusNotFound, err)
		return
	case errors.Is(err, form.ErrUnknownField):
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		s.fail(w, r, err)
		return
	}

	if invalid != nil {
		if wantsJSON {
			chirender.Status(r, http.StatusUnprocessableEntity)
			chirender.JSON(w, r, invalid)
			return
		}
		s.writePage(w, r, http.StatusUnprocessableEntity, body)
		return
	}

	s.syncDrafts()
	s.metrics.Submissions.Inc()

	s.logger.Info("form submitted",
		"form", s.form.ID,
		"fields", snapshot.Fields(),
		"request_id", RequestIDFrom(r.Context()),
	)

	message := s.form.UIHints["resultTitle"]
	if message == "" {
		message = defaultResultMessage
	}
	if wantsJSON {
		chirender.JSON(w, r, submitResponse{Message: message, Payload: string(serialized)})
		return
	}

	result, err := s.renderer.RenderResult(r.Context(), s.form, string(serialized), render.RenderOptions{
		Theme:      s.theme,
		Locale:     s.locale,
		Translator: s.translator,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, r, http.StatusOK, result)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) renderOptions(id string, draft *form.Form) render.RenderOptions {
	return draft.RenderOptions(func(opts *render.RenderOptions) {
		opts.Action = s.submitPath
		opts.ValidateURL = validatePath
		opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, render.SessionField(id))
		opts.Theme = s.theme
		opts.Locale = s.locale
		opts.Translator = s.translator
	})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	page, err := s.renderer.Page(s.form.Title, s.locale, body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	chirender.Status(r, status)
	chirender.HTML(w, r, string(page))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	chirender.Status(r, status)
	chirender.JSON(w, r, errorResponse{
		Error:     err.Error(),
		RequestID: RequestIDFrom(r.Context()),
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
	s.writeError(w, r, http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
}

func (s *Server) observe(draft *form.Form, name string) {
	if failure := draft.Error(name); failure != nil {
		s.metrics.ObserveFailure(name, string(failure.Kind))
	}
}

func (s *Server) syncDrafts() {
	s.metrics.ActiveDrafts.Set(float64(s.store.Len()))
}

// fieldValues keeps the posted values of declared fields. Control inputs
// such as _session are dropped.
func fieldValues(posted url.Values, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if values, ok := posted[name]; ok && len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}

func messages(errs validation.Errors) map[string][]string {
	out := errs.Messages()
	if out == nil {
		out = map[string][]string{}
	}
	return out
}
