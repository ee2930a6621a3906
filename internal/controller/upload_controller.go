package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/service"
	"advocate-portal-client/pkg/events"
	"advocate-portal-client/pkg/pending"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IUploadController interface {
	SelectFile(path string)
	Selected() (string, bool)
	// Submit uploads the selected file. With no selection it fails locally
	// without touching the network. Success clears the selection and emits an
	// upload-completed event; failure keeps the selection so the user can
	// re-submit.
	Submit(ctx context.Context) error
	Message() string
	Busy() bool
}

type uploadController struct {
	gateway   gateway.IPortalClient
	session   service.ISessionService
	publisher message.Publisher
	log       logger.ILogger

	mu       sync.Mutex
	selected string
	message  string
	op       pending.Operation
}

func NewUploadController(
	gw gateway.IPortalClient,
	session service.ISessionService,
	publisher message.Publisher,
	log logger.ILogger,
) IUploadController {
	return &uploadController{
		gateway:   gw,
		session:   session,
		publisher: publisher,
		log:       log,
	}
}

func (c *uploadController) SelectFile(path string) {
	c.mu.Lock()
	c.selected = path
	c.message = ""
	c.mu.Unlock()
}

func (c *uploadController) Selected() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != ""
}

func (c *uploadController) Submit(ctx context.Context) error {
	c.mu.Lock()
	selected := c.selected
	c.mu.Unlock()

	if selected == "" {
		err := &ValidationError{Reason: "Please select a file first."}
		c.setMessage(err.Reason)
		return err
	}

	if err := c.op.TryBegin(); err != nil {
		return err
	}
	err := c.submitSelected(ctx, selected)
	c.op.Settle(err)
	return err
}

func (c *uploadController) submitSelected(ctx context.Context, selected string) error {
	cred, ok := c.session.Credential()
	if !ok {
		c.setMessage("Upload failed: no active session.")
		return service.ErrNoActiveSession
	}

	file, err := os.Open(selected)
	if err != nil {
		c.setMessage(fmt.Sprintf("Upload failed: %v", err))
		return &ValidationError{Reason: fmt.Sprintf("cannot read %s", selected)}
	}
	defer file.Close()

	filename, err := c.gateway.UploadDocument(ctx, cred.Token, filepath.Base(selected), file)
	if err != nil {
		// Selection is retained so the user can re-submit.
		c.setMessage("Upload failed: " + displayMessage(err,
			"Network error during upload.",
			"Upload failed."))
		return err
	}

	c.mu.Lock()
	c.selected = ""
	c.message = fmt.Sprintf("Success! File %s uploaded and processing started.", filename)
	c.mu.Unlock()

	c.log.Info("upload", "upload completed", map[string]interface{}{"filename": filename})
	c.publishCompleted(filename)
	return nil
}

func (c *uploadController) publishCompleted(filename string) {
	e := events.NewUploadCompleted(filename)
	msg, err := events.Encode(e)
	if err != nil {
		c.log.Error("upload", "failed to encode event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.publisher.Publish(e.EventType(), msg); err != nil {
		c.log.Error("upload", "failed to publish event", map[string]interface{}{"error": err.Error()})
	}
}

func (c *uploadController) setMessage(message string) {
	c.mu.Lock()
	c.message = message
	c.mu.Unlock()
}

func (c *uploadController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *uploadController) Busy() bool {
	return c.op.InFlight()
}
