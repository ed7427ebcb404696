package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/extract"
	"github.com/avendel/textamend/internal/textproc"
)

// DefaultLanguage is used whenever a request omits the language
// parameter, both as grammar-check language and translation target.
const DefaultLanguage = "en"

// ProcessService runs the four processing operations: it validates
// input, calls the text-service adapters, writes the session result
// slot, and appends to the activity log. Adapter failures never reach
// it — the adapters degrade to pass-through output on their own.
type ProcessService struct {
	sessions     domain.SessionRepository
	logs         domain.LogRepository
	grammar      textproc.GrammarCorrector
	spell        textproc.SpellCorrector
	translator   textproc.Translator
	tone         textproc.ToneDetector
	grammarLangs map[string]bool
}

// NewProcessService creates a ProcessService. grammarLangs lists the
// languages for which an uploaded document is grammar-corrected rather
// than translated; it is configuration, not domain law.
func NewProcessService(
	sessions domain.SessionRepository,
	logs domain.LogRepository,
	grammar textproc.GrammarCorrector,
	spell textproc.SpellCorrector,
	translator textproc.Translator,
	tone textproc.ToneDetector,
	grammarLangs []string,
) *ProcessService {
	langs := make(map[string]bool, len(grammarLangs))
	for _, l := range grammarLangs {
		langs[l] = true
	}
	return &ProcessService{
		sessions:     sessions,
		logs:         logs,
		grammar:      grammar,
		spell:        spell,
		translator:   translator,
		tone:         tone,
		grammarLangs: langs,
	}
}

// SpellCheck corrects spelling and writes the spell slot.
func (s *ProcessService) SpellCheck(ctx context.Context, session *domain.Session, text string) (*domain.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", domain.ErrInvalidInput)
	}

	corrected := s.spell.Correct(ctx, text)
	tone := s.tone.Detect(ctx, corrected)

	return s.store(ctx, session, domain.SlotSpell, domain.Result{
		Corrected: corrected,
		Tone:      string(tone),
	}, &domain.LogEntry{
		Username:  session.Username,
		Original:  text,
		Corrected: corrected,
		Operation: domain.OpSpell,
		Tone:      string(tone),
	})
}

// GrammarCheck corrects grammar in the given language and writes the
// grammar slot. Tone is computed on the corrected output.
func (s *ProcessService) GrammarCheck(ctx context.Context, session *domain.Session, text, lang string) (*domain.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", domain.ErrInvalidInput)
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	corrected := s.grammar.Correct(ctx, text, lang)
	tone := s.tone.Detect(ctx, corrected)

	return s.store(ctx, session, domain.SlotGrammar, domain.Result{
		Corrected: corrected,
		Tone:      string(tone),
	}, &domain.LogEntry{
		Username:  session.Username,
		Original:  text,
		Corrected: corrected,
		Operation: domain.OpGrammar,
		Language:  lang,
		Tone:      string(tone),
	})
}

// Translate translates text into the target language and writes the
// translate slot. Tone is computed on the translated output.
func (s *ProcessService) Translate(ctx context.Context, session *domain.Session, text, targetLang string) (*domain.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", domain.ErrInvalidInput)
	}
	if targetLang == "" {
		targetLang = DefaultLanguage
	}

	translated := s.translator.Translate(ctx, text, targetLang)
	tone := s.tone.Detect(ctx, translated)

	return s.store(ctx, session, domain.SlotTranslate, domain.Result{
		Corrected: translated,
		Tone:      string(tone),
	}, &domain.LogEntry{
		Username:  session.Username,
		Original:  text,
		Corrected: translated,
		Operation: domain.OpTranslation,
		Language:  targetLang,
		Tone:      string(tone),
	})
}

// ProcessFile extracts text from an uploaded document and either
// grammar-corrects it (language in the grammar allowlist) or translates
// it. The file slot keeps the extracted content as Original.
func (s *ProcessService) ProcessFile(ctx context.Context, session *domain.Session, filename string, file io.Reader, lang string) (*domain.Result, error) {
	if lang == "" {
		lang = DefaultLanguage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if filename == "" || (ext != ".txt" && ext != ".pdf") {
		return nil, domain.ErrUnsupportedFile
	}

	content, err := extract.Text(filename, file)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyFile
	}

	var result string
	var op domain.Operation
	if s.grammarLangs[lang] {
		result = s.grammar.Correct(ctx, content, lang)
		op = domain.OpGrammar
	} else {
		result = s.translator.Translate(ctx, content, lang)
		op = domain.OpTranslation
	}
	tone := s.tone.Detect(ctx, result)

	return s.store(ctx, session, domain.SlotFile, domain.Result{
		Original:  content,
		Corrected: result,
		Tone:      string(tone),
	}, &domain.LogEntry{
		Username:  session.Username,
		Original:  content,
		Corrected: result,
		Operation: op,
		Language:  lang,
		Tone:      string(tone),
	})
}

// Results returns the current contents of all four slots for a session.
func (s *ProcessService) Results(ctx context.Context, session *domain.Session) (map[domain.Slot]*domain.Result, error) {
	results, err := s.sessions.Results(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return results, nil
}

// History returns the caller's most recent activity log entries.
func (s *ProcessService) History(ctx context.Context, username string, limit int) ([]domain.LogEntry, error) {
	entries, err := s.logs.ListByUsername(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	return entries, nil
}

// store writes the result into its slot and appends the log entry. The
// slot write and the log append are the only failure sources left by
// the adapter contracts.
func (s *ProcessService) store(ctx context.Context, session *domain.Session, slot domain.Slot, result domain.Result, entry *domain.LogEntry) (*domain.Result, error) {
	if err := s.sessions.SetResult(ctx, session.ID, slot, result); err != nil {
		return nil, fmt.Errorf("write %s slot: %w", slot, err)
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("append log entry: %w", err)
	}
	return &result, nil
}
