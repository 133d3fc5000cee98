package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/engine"
	"counting-sheep-service/internal/quizdata"
	"counting-sheep-service/internal/recommend"
	"counting-sheep-service/internal/referral"
	"counting-sheep-service/internal/scoring"
)

// EngineDeps are the collaborators shared by every attempt engine the
// websocket handler spawns.
type EngineDeps struct {
	Catalog     engine.Catalog
	Progress    engine.ProgressStores
	Rules       recommend.RuleLookup
	Submissions engine.SubmissionStore
}

// WSHandler drives one quiz attempt per websocket connection. The engine is
// single-threaded, so the read loop is the only goroutine touching it.
type WSHandler struct {
	auth     *Authenticator
	deps     EngineDeps
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(auth *Authenticator, deps EngineDeps, log *zap.Logger) *WSHandler {
	return &WSHandler{
		auth: auth,
		deps: deps,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string             `json:"questionId"`
	Value      domain.AnswerValue `json:"value"`
}

type referralPayload struct {
	Code string `json:"code"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type progressPayload struct {
	Progress domain.Progress  `json:"progress"`
	Question *domain.Question `json:"question,omitempty"`
	Answered bool             `json:"answered"`
	Moved    *bool            `json:"moved,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// resultPayload is the submit response. Chronotype is set only for the
// personality quiz, whose result is a category rather than a clinical band.
type resultPayload struct {
	domain.Submission
	Chronotype *scoring.ChronotypeResult `json:"chronotype,omitempty"`
}

// ServeWS upgrades the request and runs the attempt loop until the client
// disconnects or submits.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("quiz")
	if slug == "" {
		http.Error(w, "missing quiz", http.StatusBadRequest)
		return
	}
	quiz, ok := quizdata.BySlug(slug)
	if !ok {
		http.Error(w, "unknown quiz", http.StatusNotFound)
		return
	}
	id := h.auth.IdentityFromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	eng := engine.New(engine.Config{
		Slug:            quiz.Slug,
		Title:           quiz.Title,
		Questions:       quiz.Questions,
		PersistProgress: true,
	}, engine.Deps{
		Catalog:     h.deps.Catalog,
		Progress:    h.deps.Progress,
		Rules:       h.deps.Rules,
		Submissions: h.deps.Submissions,
		Identity:    id,
		Logger:      h.log,
	})

	if _, err := eng.Initialize(r.Context()); err != nil {
		h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	h.sendProgress(conn, eng, nil)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			if err := eng.SetAnswer(r.Context(), payload.QuestionID, payload.Value); err != nil {
				h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			h.sendProgress(conn, eng, nil)
		case "next":
			moved := eng.Next(r.Context())
			h.sendProgress(conn, eng, &moved)
		case "previous":
			moved := eng.Previous(r.Context())
			h.sendProgress(conn, eng, &moved)
		case "referral":
			var payload referralPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || !referral.Validate(payload.Code) {
				h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid referral code"}})
				continue
			}
			eng.SetReferralCode(payload.Code)
			h.sendProgress(conn, eng, nil)
		case "submit":
			result, err := eng.Submit(r.Context())
			if err != nil {
				// Submission failures are surfaced so the client can offer
				// a manual retry.
				h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			payload := resultPayload{Submission: result}
			if quiz.Slug == quizdata.SlugPersonality {
				res := scoring.ChronotypeFromAnswers(result.Answers)
				payload.Chronotype = &res
			}
			h.send(conn, outboundMessage{Type: "result", Payload: payload})
		case "reset":
			eng.ClearProgress(r.Context())
			h.sendProgress(conn, eng, nil)
		default:
			h.send(conn, outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func (h *WSHandler) sendProgress(conn *websocket.Conn, eng *engine.Engine, moved *bool) {
	payload := progressPayload{
		Progress: eng.Progress(),
		Answered: eng.IsCurrentQuestionAnswered(),
		Moved:    moved,
	}
	if q, ok := eng.CurrentQuestion(); ok {
		payload.Question = &q
	}
	h.send(conn, outboundMessage{Type: "progress", Payload: payload})
}

func (h *WSHandler) send(conn *websocket.Conn, msg outboundMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.log.Warn("ws write error", zap.Error(err))
	}
}
