package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/service"
)

// ProcessHandler handles the three text-processing endpoints. Each
// returns the newly written slot; the dashboard returns all four.
type ProcessHandler struct {
	proc *service.ProcessService
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(proc *service.ProcessService) *ProcessHandler {
	return &ProcessHandler{proc: proc}
}

type textRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// HandleSpell runs spell correction on the submitted text.
// POST /spell
// Request:  {"text":"..."}
// Response: 200 {"slot":"spell","result":{...}}
func (h *ProcessHandler) HandleSpell(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req textRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.proc.SpellCheck(r.Context(), session, req.Text)
	h.respond(w, domain.SlotSpell, result, err, "No text provided for spell check.")
}

// HandleGrammar runs grammar correction on the submitted text.
// POST /grammar
// Request:  {"text":"...","language":"en"}
// Response: 200 {"slot":"grammar","result":{...}}
func (h *ProcessHandler) HandleGrammar(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req textRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.proc.GrammarCheck(r.Context(), session, req.Text, req.Language)
	h.respond(w, domain.SlotGrammar, result, err, "No text provided for grammar correction.")
}

// HandleTranslate translates the submitted text into the target language.
// POST /translate
// Request:  {"text":"...","language":"fr"}
// Response: 200 {"slot":"translate","result":{...}}
func (h *ProcessHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req textRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.proc.Translate(r.Context(), session, req.Text, req.Language)
	h.respond(w, domain.SlotTranslate, result, err, "No text provided for translation.")
}

// HandleUpload extracts text from an uploaded .txt or .pdf document and
// grammar-corrects or translates it depending on the language.
// POST /upload (multipart: file, language)
// Response: 200 {"slot":"file","result":{...}}
func (h *ProcessHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	// 10MB upload limit.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "File too large.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file selected.")
		return
	}
	defer file.Close()

	lang := r.FormValue("language")

	result, procErr := h.proc.ProcessFile(r.Context(), session, header.Filename, file, lang)
	if procErr != nil {
		switch {
		case errors.Is(procErr, domain.ErrUnsupportedFile):
			writeError(w, http.StatusBadRequest, "Only .txt or .pdf files are supported.")
		case errors.Is(procErr, domain.ErrEmptyFile):
			writeError(w, http.StatusBadRequest, "File is empty or unreadable.")
		default:
			slog.Error("process upload", "error", procErr)
			writeError(w, http.StatusInternalServerError, "Error processing file upload.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"slot":   string(domain.SlotFile),
		"result": toResultDTO(result),
	})
}

// HandleHistory returns the caller's recent activity log entries.
// GET /history
// Response: 200 {"entries":[...]}
func (h *ProcessHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	entries, err := h.proc.History(r.Context(), user.Username, 50)
	if err != nil {
		slog.Error("load history", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": toLogEntryDTOs(entries),
	})
}

func (h *ProcessHandler) respond(w http.ResponseWriter, slot domain.Slot, result *domain.Result, err error, emptyMsg string) {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, emptyMsg)
			return
		}
		slog.Error("process text", "slot", slot, "error", err)
		writeError(w, http.StatusInternalServerError, "Error processing request.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"slot":   string(slot),
		"result": toResultDTO(result),
	})
}
