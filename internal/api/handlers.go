package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// maxBodyBytes bounds admin request bodies
const maxBodyBytes = 1 << 20

// ============ Bot Handlers ============

// handleStatus returns the connection state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

// handleQR renders the pending pairing code as PNG
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	code := s.tracker.QRCode()
	if code == "" {
		s.writeStatus(w, http.StatusNotFound, "no pending QR code")
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		s.writeError(w, fmt.Errorf("failed to render QR code: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleLogout unlinks the device
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.botSvc.Logout(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("device logged out by operator")
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleGetConfig returns the bot configuration
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.configUC.Get(r.Context()))
}

// handleUpdateConfig replaces the bot configuration
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.BotConfig
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&cfg); err != nil {
		s.writeStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := s.configUC.Update(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("bot config updated",
		zap.Bool("auto_reply", stored.AutoReplyEnabled),
		zap.Bool("business_hours", stored.BusinessHoursEnabled),
		zap.Int("commands", len(stored.CustomCommands)))
	s.writeJSON(w, http.StatusOK, stored)
}

// ============ Conversation Handlers ============

// handleListConversations lists conversation summaries
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	items, err := s.convUC.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": items})
}

// handleGetConversation returns one conversation and marks it viewed
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	contactID, ok := s.contactParam(w, r)
	if !ok {
		return
	}
	conv, err := s.convUC.View(r.Context(), contactID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, conv)
}

// SendMessageRequest is the body of an operator message
type SendMessageRequest struct {
	Body string `json:"body"`
}

// handleSendMessage sends an operator message to a contact
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	contactID, ok := s.contactParam(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Body == "" {
		s.writeStatus(w, http.StatusBadRequest, "body is required")
		return
	}

	msg, err := s.botSvc.SendOperatorMessage(r.Context(), contactID, req.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, msg)
}

// handleDeleteConversation purges one conversation
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	contactID, ok := s.contactParam(w, r)
	if !ok {
		return
	}
	if err := s.convUC.Purge(r.Context(), contactID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handlePurgeConversations purges every conversation
func (s *Server) handlePurgeConversations(w http.ResponseWriter, r *http.Request) {
	n, err := s.convUC.PurgeAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("conversations purged", zap.Int("count", n))
	s.writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// handleRecentMessages returns the newest entries of the message log
func (s *Server) handleRecentMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			s.writeStatus(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	msgs, err := s.convUC.RecentMessages(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

func (s *Server) contactParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	contactID, err := url.PathUnescape(chi.URLParam(r, "contactID"))
	if err != nil || contactID == "" {
		s.writeStatus(w, http.StatusBadRequest, "invalid contact id")
		return "", false
	}
	return contactID, true
}
