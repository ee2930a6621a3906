package controller

import (
	"context"
	"strings"
	"sync"

	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/pkg/pending"
)

type IAssistantController interface {
	SetQuery(query string)
	// Submit sends the query to the knowledge-base assistant. The previous
	// answer is dropped before the request goes out so a stale answer is
	// never shown next to a fresh error.
	Submit(ctx context.Context) error
	Answer() (string, bool)
	Message() string
	Busy() bool
}

type assistantController struct {
	gateway gateway.IPortalClient
	log     logger.ILogger

	mu        sync.Mutex
	query     string
	answer    string
	hasAnswer bool
	message   string
	op        pending.Operation
}

func NewAssistantController(gw gateway.IPortalClient, log logger.ILogger) IAssistantController {
	return &assistantController{gateway: gw, log: log}
}

func (c *assistantController) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
}

func (c *assistantController) Submit(ctx context.Context) error {
	c.mu.Lock()
	query := strings.TrimSpace(c.query)
	c.mu.Unlock()

	if query == "" {
		err := &ValidationError{Reason: "Enter a question first."}
		c.setMessage(err.Reason)
		return err
	}

	if err := c.op.TryBegin(); err != nil {
		return err
	}

	c.mu.Lock()
	c.answer = ""
	c.hasAnswer = false
	c.message = ""
	c.mu.Unlock()

	answer, err := c.gateway.AskAssistant(ctx, query)

	c.mu.Lock()
	if err != nil {
		c.message = displayMessage(err,
			"Network error during AI query.",
			"AI query failed.")
	} else {
		c.answer = answer
		c.hasAnswer = true
	}
	c.mu.Unlock()

	c.op.Settle(err)
	return err
}

func (c *assistantController) Answer() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answer, c.hasAnswer
}

func (c *assistantController) setMessage(message string) {
	c.mu.Lock()
	c.message = message
	c.mu.Unlock()
}

func (c *assistantController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *assistantController) Busy() bool {
	return c.op.InFlight()
}
