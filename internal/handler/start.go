package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := userKey(c)

	h.logger.Info("User started bot",
		zap.String("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	total, err := h.vocabService.Count(userID)
	if err != nil {
		h.logger.Error("Failed to count words", zap.Error(err), zap.String("user_id", userID))
		return h.reply(c, msgInternalError, nil)
	}

	return h.reply(c, startMessage(total), mainMenuMarkup())
}

func startMessage(total int) string {
	return fmt.Sprintf(
		"👋 Привет! У тебя уже сохранено %d слов. "+
			"Можешь использовать /quiz для тренировки или добавить новые слова в формате: dog - собака",
		total,
	)
}

// reply edits the message for callbacks and sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, opts...)
		}
		return c.Respond()
	}
	return c.Send(text, opts...)
}
