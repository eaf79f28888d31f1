package handler

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"flashcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	// Already edited by another callback, don't send a new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks that didn't match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Buttons from old keyboards may arrive without Unique
	switch data {
	case btnQuiz.Unique, btnMore.Unique:
		return h.handleQuiz(c)
	case btnWords.Unique:
		return h.handleWords(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleQuiz issues a new question. Any pending question is replaced.
func (h *Handler) handleQuiz(c tele.Context) error {
	userID := userKey(c)

	question, err := h.quizService.StartQuiz(userID)
	if errors.Is(err, domain.ErrNotEnoughWords) {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgNotEnough, ShowAlert: true})
		}
		return c.Send(msgNotEnough)
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err), zap.String("user_id", userID))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
		}
		return c.Send(msgInternalError)
	}

	h.logger.Info("Quiz question issued",
		zap.String("user_id", userID),
		zap.String("session_id", question.SessionID),
	)

	// Keep the graded message in history, ask the next question below it
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(questionText(question), questionMarkup(question), tele.ModeHTML)
}

// handleAnswer grades the option the user picked
func (h *Handler) handleAnswer(c tele.Context) error {
	userID := userKey(c)

	sessionID, index, err := parseAnswerData(cleanCallbackData(c.Callback().Data))
	if err != nil {
		h.logger.Warn("Malformed answer callback",
			zap.Error(err),
			zap.String("data", c.Callback().Data),
			zap.String("user_id", userID),
		)
		return c.Respond()
	}

	result, err := h.quizService.GradeAnswer(userID, sessionID, index)
	switch {
	case errors.Is(err, domain.ErrNoActiveQuestion), errors.Is(err, domain.ErrInvalidOption):
		h.logger.Info("Answer to inactive question",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
		)
		return c.Respond(&tele.CallbackResponse{
			Text:      "Этот вопрос уже неактуален. Начни новый: /quiz",
			ShowAlert: true,
		})
	case err != nil:
		h.logger.Error("Failed to grade answer", zap.Error(err), zap.String("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при проверке"})
	}

	h.logger.Info("Answer graded",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
		zap.Bool("correct", result.Correct),
	)

	return h.reply(c, resultText(result), resultMarkup())
}

// parseAnswerData splits "<session id>|<index>"
func parseAnswerData(data string) (sessionID string, index int, err error) {
	parts := strings.Split(data, "|")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("unexpected answer data %q", data)
	}

	index, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("bad option index in %q: %w", data, err)
	}

	return parts[0], index, nil
}

func questionText(q *domain.Question) string {
	return fmt.Sprintf("❓ Как переводится: <b>%s</b>?", html.EscapeString(q.Word))
}

// questionMarkup renders one button per option, each on its own row
func questionMarkup(q *domain.Question) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(q.Options))
	for i, option := range q.Options {
		btn := markup.Data(option, btnAnswer.Unique, q.SessionID, strconv.Itoa(i))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)
	return markup
}

func resultText(r domain.GradeResult) string {
	if r.Correct {
		return "✅ Правильно!"
	}
	return fmt.Sprintf("❌ Неправильно. Правильный ответ: %s", r.CorrectTranslation)
}
