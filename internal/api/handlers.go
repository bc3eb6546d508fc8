package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"flowershop-bot/internal/infra/telegram"
	bot "flowershop-bot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const menuButtonText = "🌸 Выбрать букет"

// Webhook всегда отвечает 200, иначе Telegram будет повторять доставку
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := decodeJSON(w, r, &update); err != nil {
		h.logger.Warn("Некорректное обновление вебхука", slog.Any("error", err))
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	h.updates.HandleUpdate(r.Context(), update)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) SendOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Неверные данные заказа", err.Error())
		return
	}

	if err := h.intake.Submit(r.Context(), payload.toRequest()); err != nil {
		if errors.Is(err, bot.ErrInvalidOrder) {
			writeJSONError(w, http.StatusBadRequest, "Неверные данные заказа", err.Error())
			return
		}
		h.logger.Error("Ошибка отправки заказа",
			slog.String("order_id", string(payload.OrderID)),
			slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "Ошибка отправки заказа", err.Error())
		return
	}

	writeJSONSuccess(w, "Заказ отправлен")
}

func (h *Handlers) NotifyStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Неверные данные", err.Error())
		return
	}

	err := h.notifier.NotifyStatus(r.Context(), payload.toRequest())
	switch {
	case err == nil:
		writeJSONSuccess(w, "Уведомление отправлено")
	case errors.Is(err, bot.ErrInvalidStatusRequest):
		writeJSONError(w, http.StatusBadRequest, "Неверные данные", err.Error())
	case errors.Is(err, bot.ErrUnknownStatus):
		writeJSONError(w, http.StatusBadRequest, "Неизвестный статус", err.Error())
	default:
		h.logger.Error("Ошибка уведомления", slog.Int64("user_id", int64(payload.UserID)), slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "Ошибка уведомления", err.Error())
	}
}

func (h *Handlers) SendPhotoPrompt(w http.ResponseWriter, r *http.Request) {
	var payload photoPromptPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Неверные данные", err.Error())
		return
	}

	if err := h.photoPrompt.Request(r.Context(), payload.toRequest()); err != nil {
		if errors.Is(err, bot.ErrInvalidPhotoPrompt) {
			writeJSONError(w, http.StatusBadRequest, "Неверные данные", err.Error())
			return
		}
		h.logger.Error("Ошибка запроса фото", slog.String("order_id", string(payload.OrderID)), slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "Ошибка запроса фото", err.Error())
		return
	}

	writeJSONSuccess(w, "Запрос фото отправлен")
}

func (h *Handlers) SendBroadcast(w http.ResponseWriter, r *http.Request) {
	var payload broadcastPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Неверные данные", err.Error())
		return
	}

	result, err := h.broadcasts.Run(r.Context(), payload.recipients(), payload.variants())
	if err != nil {
		if errors.Is(err, bot.ErrEmptyBroadcast) || errors.Is(err, bot.ErrNoRecipients) {
			writeJSONError(w, http.StatusBadRequest, "Неверные данные рассылки", err.Error())
			return
		}
		h.logger.Error("Ошибка рассылки", slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "Ошибка рассылки", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"runId":   result.RunID,
		"total":   result.Total,
		"sent":    result.Sent,
		"errors":  result.Errors,
		"skipped": result.Skipped,
	})
}

func (h *Handlers) SetupWebhook(w http.ResponseWriter, r *http.Request) {
	webhookURL := fmt.Sprintf("%s://%s/webhook", requestScheme(r), r.Host)

	resp, err := h.bot.SetWebhook(webhookURL)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, telegram.ErrBotNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		writeJSONError(w, status, "Ошибка настройки вебхука", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"webhookUrl": webhookURL,
		"telegram":   resp,
	})
}

func (h *Handlers) SetupMenuButton(w http.ResponseWriter, r *http.Request) {
	url := h.cfg.Apps.ClientURL
	if _, err := h.bot.SetMenuButton(menuButtonText, url); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, telegram.ErrBotNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		writeJSONError(w, status, "Ошибка настройки кнопки меню", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Кнопка меню установлена",
		"url":     url,
		"note":    "Перезапустите Telegram, чтобы увидеть кнопку",
	})
}

// Config отдаёт веб-приложениям публичные реквизиты хранилища
func (h *Handlers) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"supabaseUrl": h.cfg.Store.URL,
		"supabaseKey": h.cfg.Store.Key,
	})
}

func (h *Handlers) APIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"project":            h.cfg.ProjectType,
		"botConfigured":      h.bot.Configured(),
		"supabaseConfigured": h.cfg.Store.Configured(),
		"adminConfigured":    h.cfg.Telegram.AdminConfigured(),
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"project":       h.cfg.ProjectType,
		"botConfigured": h.bot.Configured(),
	})
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
