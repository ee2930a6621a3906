package controller

import (
	"context"
	"sync"

	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/service"
	"advocate-portal-client/pkg/pending"
)

type ILoginController interface {
	SetCredentials(email, password string)
	// Submit drives the sign-in through the session service. The error
	// message, if any, is retained for display via Message.
	Submit(ctx context.Context) error
	Message() string
	Busy() bool
}

type loginController struct {
	session service.ISessionService
	log     logger.ILogger

	mu       sync.Mutex
	email    string
	password string
	message  string
	op       pending.Operation
}

func NewLoginController(session service.ISessionService, log logger.ILogger) ILoginController {
	return &loginController{session: session, log: log}
}

func (c *loginController) SetCredentials(email, password string) {
	c.mu.Lock()
	c.email = email
	c.password = password
	c.message = ""
	c.mu.Unlock()
}

func (c *loginController) Submit(ctx context.Context) error {
	if err := c.op.TryBegin(); err != nil {
		return err
	}

	c.mu.Lock()
	email, password := c.email, c.password
	c.message = ""
	c.mu.Unlock()

	err := c.session.SignIn(ctx, email, password)

	c.mu.Lock()
	if err != nil {
		c.message = displayMessage(err,
			"Network error. Check if the backend is running.",
			"Login failed. Check credentials.")
	} else {
		// Credentials are transient input; drop the password once it served.
		c.password = ""
	}
	c.mu.Unlock()

	c.op.Settle(err)
	return err
}

func (c *loginController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *loginController) Busy() bool {
	return c.op.InFlight()
}
