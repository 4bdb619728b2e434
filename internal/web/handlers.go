package web

import (
	"database/sql"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
	"github.com/hpungsan/numwords/internal/numwords"
	"github.com/hpungsan/numwords/internal/ops"
)

// maxBodyBytes caps request bodies; inputs are bounded by max_input_chars well below this.
const maxBodyBytes = 4 << 20

// Handlers contains HTTP route handlers for the web form.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	memo     *ops.Memo
	renderer *Renderer
	about    template.HTML
}

// HandleIndex handles GET / by showing an empty form.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "index", IndexPageData{
		PageData: h.renderer.page("Convert", "convert"),
		MaxChars: h.cfg.MaxInputChars,
	})
}

// HandleConvert handles POST /convert from the form.
func (h *Handlers) HandleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	text := r.FormValue("text")
	if strings.TrimSpace(text) == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("text is required"))
		return
	}

	result, err := ops.Convert(r.Context(), h.db, h.cfg, h.memo, ops.ConvertInput{
		Text:      text,
		Source:    conversion.SourceWeb,
		Explain:   true,
		NoHistory: parseBoolValue(r.FormValue("no_history")),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	data := IndexPageData{
		PageData: h.renderer.page("Convert", "convert"),
		Text:     text,
		MaxChars: h.cfg.MaxInputChars,
		Result:   result,
	}

	// htmx swaps only the result box
	if isHTMX(r) {
		h.renderer.renderBlock(w, http.StatusOK, "index", "result", data)
		return
	}
	h.renderer.renderPage(w, r, "index", data)
}

// apiRequest is the JSON body accepted by POST /api/convert.
// Exactly one of Text or Texts must be set.
type apiRequest struct {
	Text      *string  `json:"text"`
	Texts     []string `json:"texts"`
	Explain   bool     `json:"explain"`
	NoHistory bool     `json:"no_history"`
}

// HandleAPIConvert handles POST /api/convert with a JSON body.
// Errors are always JSON.
func (h *Handlers) HandleAPIConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		renderJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error": map[string]any{"code": "METHOD_NOT_ALLOWED", "message": "use POST", "status": http.StatusMethodNotAllowed},
		})
		return
	}

	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.apiError(w, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return
	}

	switch {
	case req.Text != nil && req.Texts != nil:
		h.apiError(w, errors.NewInvalidRequest("provide either text or texts, not both"))
	case req.Text != nil:
		result, err := ops.Convert(r.Context(), h.db, h.cfg, h.memo, ops.ConvertInput{
			Text:      *req.Text,
			Source:    conversion.SourceAPI,
			Explain:   req.Explain,
			NoHistory: req.NoHistory,
		})
		if err != nil {
			h.apiError(w, err)
			return
		}
		renderJSON(w, http.StatusOK, result)
	case req.Texts != nil:
		result, err := ops.ConvertBatch(r.Context(), h.db, h.cfg, h.memo, ops.BatchInput{
			Texts:     req.Texts,
			Source:    conversion.SourceAPI,
			Explain:   req.Explain,
			NoHistory: req.NoHistory,
		})
		if err != nil {
			h.apiError(w, err)
			return
		}
		renderJSON(w, http.StatusOK, result)
	default:
		h.apiError(w, errors.NewInvalidRequest("text is required"))
	}
}

func (h *Handlers) apiError(w http.ResponseWriter, err error) {
	nErr, message := errors.From(err)
	renderJSON(w, nErr.Status, errorBody(nErr, message))
}

// HandleHistory handles GET /history. A non-empty q runs a full-text search
// instead of listing.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := parseIntParam(r, "limit", ops.DefaultListLimit)
	offset := parseIntParam(r, "offset", 0)

	data := HistoryPageData{
		PageData: h.renderer.page("History", "history"),
		Source:   source,
		Query:    query,
	}

	if query != "" {
		result, err := ops.Search(r.Context(), h.db, ops.SearchInput{
			Query:  query,
			Source: source,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		if wantsJSON(r) {
			renderJSON(w, http.StatusOK, result)
			return
		}
		data.Results = result.Items
		data.Pagination = result.Pagination
		h.renderer.renderPage(w, r, "history", data)
		return
	}

	result, err := ops.List(r.Context(), h.db, ops.ListInput{
		Source: source,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination
	h.renderer.renderPage(w, r, "history", data)
}

// HandleDetail handles GET /history/{id}.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("conversion ID is required"))
		return
	}

	c, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, c)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData:     h.renderer.page(shortID(c.ID), "history"),
		Conversion:   c,
		Replacements: numwords.Explain(c.InputText),
	})
}

// HandlePurge handles POST /history/purge.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	input := ops.PurgeInput{
		Source: ptrString(r.FormValue("source")),
	}

	if days := r.FormValue("older_than_days"); days != "" {
		d, err := strconv.Atoi(days)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_days must be an integer"))
			return
		}
		input.OlderThanDays = &d
	}

	result, err := ops.Purge(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="purge-result">` + template.HTMLEscapeString(result.Message) + `</div>`))
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/history", http.StatusFound)
}

// HandleAbout handles GET /about.
func (h *Handlers) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "about", AboutPageData{
		PageData: h.renderer.page("About", "about"),
		Content:  h.about,
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolValue(s string) bool {
	return s == "true" || s == "1" || s == "on"
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// shortID truncates a ULID for page titles.
func shortID(id string) string {
	if len(id) > 10 {
		return id[:10] + "..."
	}
	return id
}
