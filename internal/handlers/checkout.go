package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"dropin/internal/card"
	"dropin/internal/config"
	"dropin/internal/dom"
	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
	"dropin/internal/hostedfields/sandbox"
	"dropin/internal/middleware"
	"dropin/internal/model"
	"dropin/internal/models"
	"dropin/internal/repositories"
	"dropin/internal/utils/response"
)

// CheckoutHandler serves the sandbox checkout session API.
type CheckoutHandler struct {
	secret     []byte
	tokenTTL   time.Duration
	tokenizer  gateway.Tokenizer
	duplicates gateway.DuplicateChecker
	vault      repositories.VaultedCardRepository
	sessions   *SessionStore
}

// CheckoutHandlerOptions wires the handler's collaborators. Tokenizer
// defaults to the sandbox tokenizer; Vault and Duplicates are optional.
type CheckoutHandlerOptions struct {
	Secret     []byte
	TokenTTL   time.Duration
	Tokenizer  gateway.Tokenizer
	Duplicates gateway.DuplicateChecker
	Vault      repositories.VaultedCardRepository
}

func NewCheckoutHandler(opts CheckoutHandlerOptions) *CheckoutHandler {
	if opts.Tokenizer == nil {
		opts.Tokenizer = gateway.NewSandboxTokenizer()
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	return &CheckoutHandler{
		secret:     opts.Secret,
		tokenTTL:   opts.TokenTTL,
		tokenizer:  opts.Tokenizer,
		duplicates: opts.Duplicates,
		vault:      opts.Vault,
		sessions:   NewSessionStore(),
	}
}

type createSessionRequest struct {
	MerchantID string                `json:"merchantId"`
	Gateway    gateway.Configuration `json:"gateway"`
	Config     config.CheckoutConfig `json:"config"`
}

// CreateSession builds a checkout session: it issues a client token, renders
// the card sheet and creates its sandbox hosted fields instance.
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.MerchantID == "" {
		return response.BadRequest(c, "merchantId is required")
	}
	if err := req.Config.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if !card.IsEnabled(req.Config.Card) {
		return response.BadRequest(c, "card payments are disabled for this configuration")
	}

	clientToken, err := gateway.IssueClientToken(h.secret, req.MerchantID, req.Gateway, h.tokenTTL)
	if err != nil {
		log.Printf("Failed to issue client token: %v", err)
		return response.InternalError(c, "could not issue client token")
	}

	provider := sandbox.NewProvider(sandbox.ProviderOptions{
		Tokenizer:  h.tokenizer,
		Duplicates: h.duplicates,
		MerchantID: req.MerchantID,
	})

	// The view owns the instance; keep a direct handle so input can be
	// routed into the sandbox frames.
	var instance *sandbox.Instance
	create := func(ctx context.Context, opts hostedfields.CreateOptions) (hostedfields.Instance, error) {
		inst, err := provider.Create(ctx, opts)
		if err != nil {
			return nil, err
		}
		instance = inst.(*sandbox.Instance)
		return inst, nil
	}

	doc := dom.NewDocument()
	mdl := model.New(model.Options{GuestCheckout: req.Config.GuestCheckout})
	view := card.New(card.Options{
		Model:         mdl,
		Document:      doc,
		Gateway:       req.Gateway,
		Merchant:      req.Config.Card,
		Create:        create,
		Authorization: clientToken,
	})

	if err := view.Initialize(c.Context()); err != nil {
		log.Printf("Failed to initialize card sheet: %v", err)
		return response.InternalError(c, "could not initialize checkout")
	}

	session := h.sessions.Add(&Session{
		MerchantID: req.MerchantID,
		Document:   doc,
		Model:      mdl,
		View:       view,
		Instance:   instance,
	})

	return response.Created(c, fiber.Map{
		"sessionId":   session.ID,
		"clientToken": clientToken,
		"expiresIn":   int(h.tokenTTL.Seconds()),
	})
}

// session resolves the route's session and checks it belongs to the token's
// merchant.
func (h *CheckoutHandler) session(c *fiber.Ctx) (*Session, error) {
	sess, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return nil, response.NotFound(c, "unknown session")
	}
	if claims := middleware.ClaimsFromContext(c); claims != nil && claims.MerchantID != sess.MerchantID {
		return nil, response.Forbidden(c, "session belongs to another merchant")
	}
	return sess, nil
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Input replaces a hosted field's content.
func (h *CheckoutHandler) Input(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := sess.Instance.Input(hostedfields.FieldName(req.Field), req.Value); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}

// Focus moves focus into a hosted field.
func (h *CheckoutHandler) Focus(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := sess.Instance.FocusField(hostedfields.FieldName(req.Field)); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}

// Blur removes focus from a hosted field.
func (h *CheckoutHandler) Blur(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := sess.Instance.BlurField(hostedfields.FieldName(req.Field)); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}

// Submit runs the session's card sheet through tokenization and vaults the
// result when requested.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	payload, err := sess.View.Tokenize(c.Context())
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, card.ErrNotInitialized) || errors.Is(err, card.ErrTokenizationInProgress) {
			status = fiber.StatusConflict
		}
		return response.Respond(c, status, fiber.Map{
			"error": err.Error(),
			"code":  hostedfields.ErrorCode(err),
		})
	}

	if payload.Vaulted && h.vault != nil {
		vaulted := &models.VaultedCard{
			MerchantID: sess.MerchantID,
			Token:      payload.Nonce,
			CardType:   payload.Details.CardType,
			LastFour:   payload.Details.LastFour,
		}
		if err := h.vault.Save(vaulted); err != nil {
			log.Printf("Failed to vault card for merchant %s: %v", sess.MerchantID, err)
		}
	}

	return response.Success(c, payload)
}

// State reports the session's current form and shell state.
func (h *CheckoutHandler) State(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	requestable, pmType := sess.Model.PaymentMethodRequestable()
	resp := fiber.Map{
		"ready":             sess.Model.Ready(),
		"requestable":       requestable,
		"paymentMethodType": pmType,
		"isTokenizing":      sess.View.IsTokenizing(),
		"fields":            sess.Instance.GetState(),
		"paymentMethods":    sess.Model.PaymentMethods(),
	}
	if err := sess.Model.Error(); err != nil {
		resp["error"] = err.Error()
	}
	return response.Success(c, resp)
}

// EndSession tears the session down and forgets it.
func (h *CheckoutHandler) EndSession(c *fiber.Ctx) error {
	sess, ok := h.sessions.Remove(c.Params("id"))
	if !ok {
		return response.NotFound(c, "unknown session")
	}
	if err := sess.View.Teardown(c.Context()); err != nil {
		log.Printf("Failed to tear down session %s: %v", sess.ID, err)
	}
	return response.Success(c, fiber.Map{"status": "ended"})
}

// VaultedCards lists a merchant's vaulted cards.
func (h *CheckoutHandler) VaultedCards(c *fiber.Ctx) error {
	if h.vault == nil {
		return response.Success(c, fiber.Map{"cards": []models.VaultedCard{}})
	}

	merchantID := c.Query("merchantId")
	if merchantID == "" {
		return response.BadRequest(c, "merchantId is required")
	}

	cards, err := h.vault.FindByMerchant(merchantID)
	if err != nil {
		log.Printf("Failed to list vaulted cards for merchant %s: %v", merchantID, err)
		return response.InternalError(c, "could not list vaulted cards")
	}
	return response.Success(c, fiber.Map{"cards": cards})
}
