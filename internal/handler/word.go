package handler

import (
	"fmt"
	"strings"

	"flashcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram rejects messages longer than 4096 characters
const maxMessageRunes = 4000

// handleText treats every non-command message as a batch of word pairs
func (h *Handler) handleText(c tele.Context) error {
	userID := userKey(c)
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	lines := splitLines(text)

	added, skipped, err := h.vocabService.AddEntries(userID, lines)
	if err != nil {
		h.logger.Error("Failed to save words",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return c.Send("Не удалось сохранить слова. Попробуйте ещё раз.")
	}

	h.logger.Info("Words saved",
		zap.String("user_id", userID),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
	)

	return c.Send(addedMessage(added, skipped))
}

// handleWords lists the user's vocabulary
func (h *Handler) handleWords(c tele.Context) error {
	userID := userKey(c)

	pairs, err := h.vocabService.ListPairs(userID)
	if err != nil {
		h.logger.Error("Failed to list words", zap.Error(err), zap.String("user_id", userID))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
		}
		return c.Send(msgInternalError)
	}

	if len(pairs) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{
				Text:      "У тебя пока нет сохранённых слов",
				ShowAlert: true,
			})
		}
		return c.Send("У тебя пока нет сохранённых слов. Отправь пару в формате: dog - собака")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnQuiz),
		markup.Row(btnMainMenu),
	)

	return h.reply(c, wordsMessage(pairs), markup)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func addedMessage(added, skipped int) string {
	msg := fmt.Sprintf("✅ Добавлено: %d.", added)
	if skipped > 0 {
		msg += fmt.Sprintf(" Пропущено: %d строк (неверный формат).", skipped)
	}
	return msg
}

// wordsMessage renders the vocabulary, cutting the list to fit one message
func wordsMessage(pairs []domain.WordPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Твои слова (%d):\n\n", len(pairs))
	size := len([]rune(b.String()))

	for i, pair := range pairs {
		line := fmt.Sprintf("%s — %s\n", pair.Word, pair.Translation)
		lineSize := len([]rune(line))
		if size+lineSize > maxMessageRunes {
			fmt.Fprintf(&b, "…и ещё %d", len(pairs)-i)
			break
		}
		b.WriteString(line)
		size += lineSize
	}

	return strings.TrimRight(b.String(), "\n")
}
