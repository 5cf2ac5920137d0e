// Package orchestrators coordinates multi-step operations across the
// store, the external providers and the mirrors.
package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"lideranca/internal/adapters/ai"
)

// Fallback copy shown when generation fails. These are user-facing
// strings, not errors; generation failures never break the form.
const (
	FallbackWordEmpty  = "Não foi possível gerar a mensagem no momento."
	FallbackWordError  = "Erro ao conectar com a sabedoria divina artificial. Tente novamente."
	FallbackStudyEmpty = "Não foi possível expandir o estudo."
	FallbackStudyError = "Erro ao expandir o estudo."
)

// GenerateDeps holds the dependencies for draft generation.
type GenerateDeps struct {
	Generator ai.Generator
}

// ExecuteGeneratePastorWord drafts a pastoral message on a theme.
// PRE: theme is non-empty
// POST: Always returns displayable text; failures map to fallback copy
func ExecuteGeneratePastorWord(ctx context.Context, deps GenerateDeps, theme string) string {
	prompt := fmt.Sprintf(
		`Escreva uma mensagem pastoral inspiradora de aproximadamente 200 palavras sobre o tema: %q. Use um tom acolhedor, bíblico e encorajador para a congregação.`,
		theme,
	)
	text, err := deps.Generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("generate_event", "event", "pastor_word_failed", "theme", theme, "error", err)
		return FallbackWordError
	}
	if text == "" {
		return FallbackWordEmpty
	}
	slog.Info("generate_event", "event", "pastor_word_generated", "theme", theme)
	return text
}

// ExecuteExpandStudy drafts a cell study script from a title and a
// bible reference.
// PRE: title and reference are non-empty
// POST: Always returns displayable text; failures map to fallback copy
func ExecuteExpandStudy(ctx context.Context, deps GenerateDeps, title, reference string) string {
	prompt := fmt.Sprintf(
		`Crie um roteiro de estudo bíblico para uma célula baseado no tema %q e na referência %q. O roteiro deve incluir: 1. Quebra-gelo, 2. Louvor sugerido, 3. Pergunta de reflexão, 4. Aplicação prática.`,
		title, reference,
	)
	text, err := deps.Generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("generate_event", "event", "expand_study_failed", "title", title, "error", err)
		return FallbackStudyError
	}
	if text == "" {
		return FallbackStudyEmpty
	}
	slog.Info("generate_event", "event", "study_expanded", "title", title)
	return text
}
