package handler

import (
	"strconv"

	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	vocabService *service.VocabularyService
	quizService  *service.QuizService
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	vocabService *service.VocabularyService,
	quizService *service.QuizService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		vocabService: vocabService,
		quizService:  quizService,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/quiz", h.handleQuiz)
	h.bot.Handle("/words", h.handleWords)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnQuiz, h.handleQuiz)
	h.bot.Handle(&btnMore, h.handleQuiz)
	h.bot.Handle(&btnWords, h.handleWords)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnAnswer, h.handleAnswer)

	// Generic callback handler for anything else
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// userKey returns the sender ID as the vocabulary document key
func userKey(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

// Inline keyboard buttons
var (
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🧠 Квиз",
	}
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📚 Мои слова",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔄 Ещё",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}
	// Answer buttons carry "<session id>|<option index>" as data
	btnAnswer = tele.Btn{
		Unique: "quiz_answer",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnQuiz),
		menu.Row(btnWords),
	)
	return menu
}

// resultMarkup is shown under a graded question
func resultMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnMore),
		menu.Row(btnMainMenu),
	)
	return menu
}

const (
	msgInternalError = "Произошла ошибка. Попробуйте позже."
	msgNotEnough     = "⛔️ Нужно минимум 2 слова для квиза."
)
