package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/promptmix/pkg/session"
)

// ExportFilename is the download name of the history export.
const ExportFilename = "history.csv"

func (a *API) state(_ *http.Request, s *session.Session) Response {
	return JSON(s.Mixer.State())
}

type templateRequest struct {
	Template *string `json:"template"`
}

func (a *API) setTemplate(r *http.Request, s *session.Session) Response {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return a.fail(r, bodyError(err, "body must be a JSON object with a template field"))
	}
	if req.Template == nil {
		return a.fail(r, badRequest("template is required"))
	}

	tags, err := s.Mixer.SetTemplate(*req.Template)
	state := s.Mixer.State()
	meta := map[string]any{"tags": tags, "ready": state.Ready}
	if err != nil {
		return JSONError(err, WithMeta(meta))
	}
	return JSON(state, WithMeta(meta))
}

func (a *API) loadData(r *http.Request, s *session.Session) Response {
	body, filename, err := uploadedFile(r)
	if err != nil {
		return a.fail(r, err)
	}
	defer body.Close()

	counts, err := s.Mixer.LoadData(body, filename)
	if err != nil {
		return a.fail(r, err)
	}
	return JSON(s.Mixer.State(), WithMeta(map[string]any{"counts": counts}))
}

// uploadedFile returns the multipart "file" part, or the raw body when the
// request is not multipart and names the file in the filename query value.
func uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", bodyError(err, "multipart field \"file\" is required")
		}
		return file, header.Filename, nil
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		return nil, "", badRequest("upload a multipart \"file\" field or pass ?filename= with a raw body")
	}
	return r.Body, filename, nil
}

func (a *API) generate(r *http.Request, s *session.Session) Response {
	rec, err := s.Mixer.Generate(r.Context())
	if err != nil {
		return a.fail(r, err)
	}
	state := s.Mixer.State()
	return JSON(rec,
		WithStatus(http.StatusCreated),
		WithMeta(map[string]any{
			"remaining":     state.Remaining,
			"capacity":      state.Capacity,
			"next_sequence": state.NextSequence,
		}),
	)
}

func (a *API) history(_ *http.Request, s *session.Session) Response {
	records := s.Mixer.History()
	return JSON(records, WithMeta(map[string]any{"count": len(records)}))
}

func (a *API) lookup(r *http.Request, s *session.Session) Response {
	summary := r.URL.Query().Get("summary")
	if summary == "" {
		return a.fail(r, badRequest("summary is required"))
	}
	rec, err := s.Mixer.Find(summary)
	if err != nil {
		return a.fail(r, err)
	}
	return JSON(rec)
}

func (a *API) export(r *http.Request, s *session.Session) Response {
	return CSV(ExportFilename, func(w http.ResponseWriter) error {
		return s.Mixer.WriteExport(w)
	})
}

func (a *API) archive(r *http.Request, s *session.Session) Response {
	obj, err := a.archiver.Archive(r.Context(), s.ID, s.Mixer.Export())
	if err != nil {
		return a.fail(r, err)
	}
	return JSON(obj, WithStatus(http.StatusCreated))
}

func (a *API) clearHistory(_ *http.Request, s *session.Session) Response {
	s.Mixer.ClearHistory()
	return JSON(s.Mixer.State())
}

func (a *API) endSession(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	w.WriteHeader(http.StatusNoContent)
}

// bodyError keeps body size violations and reports anything else as a bad
// request with msg.
func bodyError(err error, msg string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return badRequest(msg)
}
