// Package services содержит логику бизнес-уровня перевода и чата через LLM.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/llm"
)

// ErrLLMUnavailable — сбой LLM-провайдера. Детали остаются в логах.
var ErrLLMUnavailable = errors.New("language model is unavailable")

// Системные промпты обоих режимов.
const (
	translateSystemPrompt = "Translate the following text to the target language."
	chatSystemPrompt      = "You are a knowledgeable assistant. The user message arrives as " +
		"\"Text: ...\" with a \"Target Language: ...\" line. Treat the text as a question, " +
		"answer it, and write your entire response in the target language."
)

// noAnswer подставляется, если модель вернула пустой ответ.
const noAnswer = "NO ANSWER"

// LLM описывает синхронный вызов языковой модели.
type LLM interface {
	// Generate возвращает текст ответа модели на пару промптов.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TranslatorService проксирует запросы перевода и чата к LLM.
// Состояние между запросами не хранится.
type TranslatorService struct {
	llm LLM
	log *slog.Logger
}

// NewTranslatorService создает новый экземпляр TranslatorService.
func NewTranslatorService(llmClient LLM, log *slog.Logger) *TranslatorService {
	return &TranslatorService{
		llm: llmClient,
		log: log,
	}
}

// Translate переводит текст на целевой язык.
func (s *TranslatorService) Translate(ctx context.Context, text, language string) (string, error) {
	return s.generate(ctx, translateSystemPrompt, text, language)
}

// Chat отвечает на сообщение пользователя на целевом языке.
func (s *TranslatorService) Chat(ctx context.Context, text, language string) (string, error) {
	return s.generate(ctx, chatSystemPrompt, text, language)
}

func (s *TranslatorService) generate(ctx context.Context, systemPrompt, text, language string) (string, error) {
	userPrompt := fmt.Sprintf("Text: %s\nTarget Language: %s", text, language)
	answer, err := s.llm.Generate(ctx, systemPrompt, userPrompt)
	if errors.Is(err, llm.ErrEmptyResponse) {
		return noAnswer, nil
	}
	if err != nil {
		s.log.Error("llm request failed", sl.Err(err))
		return "", ErrLLMUnavailable
	}
	return answer, nil
}
