package server

import (
	"context"
	"crypto/sha256"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	clientdist "github.com/vango-dev/signup/client/dist"
	"github.com/vango-dev/signup/pkg/middleware"
	"github.com/vango-dev/signup/pkg/render"
	"github.com/vango-dev/signup/pkg/signup"
)

// ClientPath is where the thin client is served.
const ClientPath = "/client.js"

// RenderPage writes the complete page for state in cat's language. The
// form carries no live handlers; the thin client attaches to it.
func RenderPage(w io.Writer, r *render.Renderer, state signup.State, cat *signup.Catalog) error {
	if r == nil {
		r = render.NewRenderer(render.RendererConfig{})
	}
	return r.RenderPage(w, render.PageData{
		Body:  signup.View(state, cat, signup.Handlers{}),
		Title: cat.Title(),
		Lang:  cat.Tag().String(),
		Meta: []render.MetaTag{
			{Name: "description", Content: cat.Title()},
		},
		Styles:  []string{string(clientdist.SignupCSS)},
		Scripts: []render.ScriptTag{{Src: ClientPath, Defer: true}},
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, signup.State{}, s.catalogFor(r))
}

// handlePost is the no-script path: each posted field gets a change and a
// blur, in form order, then the form is submitted.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cat := s.catalogFor(r)
	reducer := s.Form().Reducer

	var state signup.State
	for _, f := range signup.Fields {
		v := r.PostForm.Get(string(f))
		state = reducer.Apply(state, signup.Event{Kind: signup.KindChange, Field: f, Value: v})
		state = reducer.Apply(state, signup.Event{Kind: signup.KindBlur, Field: f, Value: v})
		s.metrics.RecordViolation(string(state.Errors.Get(f)))
	}

	err := s.tracing.TraceEvent(r.Context(), "", string(signup.KindSubmit), "", func(ctx context.Context) error {
		if !state.Valid() {
			return signup.ErrFormInvalid
		}
		return s.config.Sink.Submit(ctx, state.Form)
	}, state.Valid)

	switch {
	case err == nil:
		s.metrics.RecordSubmission(middleware.ResultOK)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case stderrors.Is(err, signup.ErrFormInvalid):
		s.metrics.RecordSubmission(middleware.ResultInvalid)
		// Passwords are not echoed back.
		state.Form.Password = ""
		state.Form.RepeatPassword = ""
		state.Strength = signup.Strength{}
		s.renderPage(w, http.StatusUnprocessableEntity, state, cat)
	default:
		s.metrics.RecordSubmission(middleware.ResultError)
		s.logger.Error("submission failed", "error", err)
		state.Form.Password = ""
		state.Form.RepeatPassword = ""
		state.Strength = signup.Strength{}
		s.renderPage(w, http.StatusInternalServerError, state, cat)
	}
}

var clientETag = func() string {
	sum := sha256.Sum256(clientdist.SignupJS)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8]))
}()

func (s *Server) serveClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", clientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), clientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Write(clientdist.SignupJS)
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, part := range strings.Split(ifNoneMatch, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == etag || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
