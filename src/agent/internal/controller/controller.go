package controller

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sahatak/telecare-agent/src/agent/config"
	"github.com/sahatak/telecare-agent/src/appointments"
	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/calendar"
	"github.com/sahatak/telecare-agent/src/common/logger"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/models/enum"
	"github.com/sahatak/telecare-agent/src/common/rest"
	"github.com/sahatak/telecare-agent/src/messaging"
	"github.com/sahatak/telecare-agent/src/poll"
	"github.com/sahatak/telecare-agent/src/support"
	"github.com/sahatak/telecare-agent/src/video"
)

// UISinks are the callbacks reconciliation pushes derived state through. The agent
// has no rendering of its own; whoever embeds it decides what a button or a thread
// update means.
type UISinks struct {
	SessionButton video.ApplyFunc
	Thread        messaging.ThreadApplyFunc
	Inbox         messaging.InboxApplyFunc
}

// Controller owns the whole session: the cache singleton, the REST client, the
// domain services and the pollers, plus the transient navigation context (current
// conversation and recipient). Construction wires everything; Shutdown tears it all
// down; Logout additionally clears the persisted namespace.
type Controller struct {
	AgentID string

	Appointments appointments.Service
	Messaging    messaging.Service
	Calendar     calendar.Service
	Video        video.Service
	Support      support.Service

	conf       *config.Config
	cache      cache.CacheService
	reconciler *video.Reconciler
	threads    *messaging.ThreadReconciler
	inbox      *messaging.InboxReconciler

	sessionPoller      poll.Poller
	messagePoller      poll.Poller
	conversationPoller poll.Poller

	mu                    sync.Mutex
	currentConversationID string
	currentRecipientID    string
}

func NewController(conf *config.Config, sinks UISinks) (*Controller, error) {
	if sinks.SessionButton == nil || sinks.Thread == nil || sinks.Inbox == nil {
		return nil, errors.New("controller requires all UI sinks")
	}

	policies := cache.NewPolicyTable()
	if conf.PolicyFile != "" {
		if err := policies.LoadOverrides(conf.PolicyFile); err != nil {
			return nil, err
		}
	}

	cacheService := cache.NewCacheService(
		policies,
		cache.NewMemoryBackend(),
		cache.NewDiskBackend(conf.CacheDir),
	)

	api := rest.NewClient(conf.APIBaseURL, func() string { return conf.APIToken })

	c := &Controller{
		AgentID:      uuid.New().String(),
		conf:         conf,
		cache:        cacheService,
		Appointments: appointments.NewService(api, cacheService),
		Messaging:    messaging.NewService(api, cacheService),
		Calendar:     calendar.NewService(api, cacheService),
		Video:        video.NewService(api),
		Support:      support.NewService(api),
	}

	c.reconciler = video.NewReconciler(cacheService, c.Video, enum.UserRole(conf.UserRole), sinks.SessionButton)
	c.threads = messaging.NewThreadReconciler(sinks.Thread)
	c.inbox = messaging.NewInboxReconciler(sinks.Inbox)

	c.sessionPoller = poll.NewPoller("sessions", conf.SessionPollInterval, c.sessionTick)
	c.messagePoller = poll.NewPoller("messages", conf.MessagePollInterval, c.messageTick)
	c.conversationPoller = poll.NewPoller("conversations", conf.ConversationPollInterval, c.conversationTick)

	return c, nil
}

// Start arms the pollers. The conversation list is tracked from the start; sessions
// and threads join the polling sets through WatchAppointment / OpenConversation.
func (c *Controller) Start() {
	c.conversationPoller.Track("inbox")
	c.sessionPoller.Start()
	c.messagePoller.Start()
	c.conversationPoller.Start()
	logger.GetLogger().Infof("action: agent_start | result: success | agent_id: %s", c.AgentID)
}

func (c *Controller) WatchAppointment(appointmentID string) {
	c.sessionPoller.Track(appointmentID)
	c.sessionPoller.Refresh()
}

func (c *Controller) UnwatchAppointment(appointmentID string) {
	c.sessionPoller.Untrack(appointmentID)
}

// OpenConversation makes a thread the navigation context and starts polling it.
func (c *Controller) OpenConversation(conversationID, recipientID string) {
	c.mu.Lock()
	previous := c.currentConversationID
	c.currentConversationID = conversationID
	c.currentRecipientID = recipientID
	c.mu.Unlock()

	if previous != "" && previous != conversationID {
		c.messagePoller.Untrack(previous)
		c.threads.Forget(previous)
	}
	c.messagePoller.Track(conversationID)
	c.messagePoller.Refresh()
}

// CloseConversation resets the navigation context, e.g. on navigating away.
func (c *Controller) CloseConversation() {
	c.mu.Lock()
	conversationID := c.currentConversationID
	c.currentConversationID = ""
	c.currentRecipientID = ""
	c.mu.Unlock()

	if conversationID != "" {
		c.messagePoller.Untrack(conversationID)
		c.threads.Forget(conversationID)
	}
}

// SendMessage posts into the currently open conversation and pushes the
// optimistically appended thread through the UI sink right away; the next poll
// confirms it against the server.
func (c *Controller) SendMessage(ctx context.Context, content string) (models.Message, error) {
	conversationID, _ := c.CurrentConversation()
	if conversationID == "" {
		return models.Message{}, &rest.ValidationError{Field: "conversation_id", Reason: "no open conversation"}
	}

	sent, err := c.Messaging.SendMessage(ctx, conversationID, content)
	if err != nil {
		return sent, err
	}
	if thread, err := c.Messaging.Thread(ctx, conversationID, false); err == nil {
		c.threads.Reconcile(ctx, thread)
	}
	return sent, nil
}

func (c *Controller) CurrentConversation() (conversationID, recipientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentConversationID, c.currentRecipientID
}

// SetVisible suspends or resumes all pollers following document visibility.
// Becoming visible triggers an immediate refresh on top of the regular cadence.
func (c *Controller) SetVisible(visible bool) {
	if visible {
		c.sessionPoller.Resume()
		c.messagePoller.Resume()
		c.conversationPoller.Resume()
		return
	}
	c.sessionPoller.Suspend()
	c.messagePoller.Suspend()
	c.conversationPoller.Suspend()
}

// Shutdown stops the pollers and releases the cache. Safe to call more than once.
func (c *Controller) Shutdown() {
	c.sessionPoller.Stop()
	c.messagePoller.Stop()
	c.conversationPoller.Stop()
	_ = c.cache.Close()
	logger.GetLogger().Infof("action: agent_shutdown | result: success")
}

// Logout tears the session down and wipes every cached entry, including the
// persisted namespace.
func (c *Controller) Logout() {
	c.CloseConversation()
	c.sessionPoller.Stop()
	c.messagePoller.Stop()
	c.conversationPoller.Stop()
	c.cache.ClearAll()
	_ = c.cache.Close()
	logger.GetLogger().Infof("action: agent_logout | result: success")
}

// Cache exposes the store for maintenance commands.
func (c *Controller) Cache() cache.CacheService {
	return c.cache
}

func (c *Controller) sessionTick(ctx context.Context, appointmentID string) error {
	snapshot, err := c.Video.Status(ctx, appointmentID)
	if err != nil {
		return err
	}
	return c.reconciler.Reconcile(ctx, appointmentID, snapshot)
}

func (c *Controller) messageTick(ctx context.Context, conversationID string) error {
	// Force refresh: the poller is the cache's writer here, not its reader.
	thread, err := c.Messaging.Thread(ctx, conversationID, true)
	if err != nil {
		return err
	}
	c.threads.Reconcile(ctx, thread)
	return nil
}

func (c *Controller) conversationTick(ctx context.Context, _ string) error {
	conversations, err := c.Messaging.ListConversations(ctx, true)
	if err != nil {
		return err
	}
	c.inbox.Reconcile(ctx, conversations)
	return nil
}
