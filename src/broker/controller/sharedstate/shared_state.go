// Package sharedstate is the authoritative owner of per-document text and
// ownership. Exactly one session may submit accepted deltas for a document
// at any instant; every other viewer is a follower that receives deltas.
// LSP document lifecycle notifications originate only here, never from a
// session's local buffer state.
package sharedstate

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/controller/routing"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	notifier "github.com/multiedit/lsp-broker/src/broker/gateway/session-client"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/multiedit/lsp-broker/src/broker/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "shared-state"

	_ownerIdleKey       = "broker.ownerIdleSeconds"
	_defaultOwnerIdle   = 120 * time.Second
	_idleTickerInterval = 15 * time.Second
)

// Controller decides who may currently submit edits for each document URI.
type Controller interface {
	// Open registers the session as a viewer; the first viewer establishes
	// ownership and triggers the broker-owned LSP didOpen.
	Open(ctx context.Context, params *entity.SharedOpenParams) error

	// Close removes the session as a viewer; the last viewer triggers the
	// broker-owned LSP didClose and discards ownership.
	Close(ctx context.Context, params *entity.SharedCloseParams) error

	// Focus transfers ownership to the session: owner, preferred owner,
	// epoch bump, lock and broadcast happen in one atomic step.
	Focus(ctx context.Context, params *entity.SharedFocusParams) (*entity.FocusResult, error)

	// Edit submits deltas for an owned document. Rejected unless the session
	// is the owner and has resynced for the current epoch.
	Edit(ctx context.Context, params *entity.SharedEditParams) (*entity.EditAck, error)

	// Resync aligns the session's local text with the broker's copy. A
	// matching fingerprint yields an empty snapshot.
	Resync(ctx context.Context, params *entity.SharedResyncParams) (*entity.ResyncResult, error)

	// IdleTick unlocks every locked document whose owner has been inactive
	// past the idle threshold, broadcasting each unlock exactly once.
	IdleTick(ctx context.Context, now time.Time) error

	// EndSession removes a lost or departed session from every document it
	// was viewing.
	EndSession(ctx context.Context, sessionID uuid.UUID) error

	// Owner answers ownership queries from other components with a copy.
	Owner(ctx context.Context, docURI protocol.DocumentURI) (entity.DocumentOwnership, error)
}

// Params are inbound parameters to initialize the controller.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Sessions  session.Repository
	Gateway   notifier.Gateway
	Routing   routing.Controller
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Config    config.Provider
}

type documentEntry struct {
	ownership  entity.DocumentOwnership
	text       string
	version    int32
	languageID string
	viewers    map[uuid.UUID]struct{}
}

type controller struct {
	sessions  session.Repository
	gateway   notifier.Gateway
	routing   routing.Controller
	logger    *zap.SugaredLogger
	stats     tally.Scope
	ownerIdle time.Duration

	mu        sync.Mutex
	documents map[protocol.DocumentURI]*documentEntry
}

// New creates the shared-state controller and schedules the idle ticker on
// the application lifecycle.
func New(p Params) Controller {
	ownerIdle := _defaultOwnerIdle
	var ownerIdleSeconds int
	if err := p.Config.Get(_ownerIdleKey).Populate(&ownerIdleSeconds); err == nil && ownerIdleSeconds > 0 {
		ownerIdle = time.Duration(ownerIdleSeconds) * time.Second
	}

	c := &controller{
		sessions:  p.Sessions,
		gateway:   p.Gateway,
		routing:   p.Routing,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope("shared_state"),
		ownerIdle: ownerIdle,
		documents: make(map[protocol.DocumentURI]*documentEntry),
	}

	ticker := newIdleTicker(c, _idleTickerInterval)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ticker.start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ticker.stop()
			return nil
		},
	})

	return c
}

func (c *controller) Open(ctx context.Context, params *entity.SharedOpenParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return err
	}

	c.mu.Lock()
	entry, ok := c.documents[docURI]
	if ok {
		entry.viewers[s.UUID] = struct{}{}
		c.mu.Unlock()
		// The authoritative text already exists; the session resyncs to it
		// rather than overwriting it.
		return nil
	}

	entry = &documentEntry{
		ownership: entity.DocumentOwnership{
			Owner:          s.UUID,
			PreferredOwner: s.UUID,
			Epoch:          0,
			Lock:           entity.LockStateUnlocked,
			LastActivity:   time.Now(),
			ResyncComplete: true,
		},
		text:       params.Text,
		version:    1,
		languageID: params.LanguageID,
		viewers:    map[uuid.UUID]struct{}{s.UUID: {}},
	}
	c.documents[docURI] = entry
	version := entry.version
	c.mu.Unlock()

	c.updateMetrics()

	// First viewer across all sessions: the document becomes visible to the
	// language servers.
	if err := c.routing.DidOpen(ctx, docURI, params.LanguageID, params.Text, version); err != nil {
		c.logger.Warnw("notifying server of open", "uri", docURI, "err", err)
	}
	return nil
}

func (c *controller) Close(ctx context.Context, params *entity.SharedCloseParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return err
	}

	return c.removeViewer(ctx, docURI, s.UUID)
}

func (c *controller) Focus(ctx context.Context, params *entity.SharedFocusParams) (*entity.FocusResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return nil, err
	}

	// The transfer is total: owner, preferred owner, epoch, lock state and
	// the broadcast payload are all settled under one critical section, so a
	// concurrent edit from the prior owner lands either wholly before or
	// wholly after it.
	c.mu.Lock()
	entry, ok := c.documents[docURI]
	if !ok {
		c.mu.Unlock()
		return nil, &errors.DocumentNotFoundError{URI: docURI}
	}
	if _, ok := entry.viewers[s.UUID]; !ok {
		c.mu.Unlock()
		return nil, &errors.DocumentNotFoundError{URI: docURI}
	}

	entry.ownership.Owner = s.UUID
	entry.ownership.PreferredOwner = s.UUID
	entry.ownership.Epoch++
	entry.ownership.Lock = entity.LockStateLocked
	entry.ownership.LastActivity = time.Now()
	entry.ownership.ResyncComplete = false

	epoch := entry.ownership.Epoch
	viewers := viewerList(entry)
	c.mu.Unlock()

	c.stats.Counter("focus_transfers").Inc(1)
	c.broadcast(ctx, viewers, func(sCtx context.Context) error {
		return c.gateway.OwnershipChanged(sCtx, &entity.OwnershipChangedEvent{
			URI:   docURI,
			Owner: s.UUID,
			Epoch: epoch,
		})
	})

	return &entity.FocusResult{Epoch: epoch}, nil
}

func (c *controller) Edit(ctx context.Context, params *entity.SharedEditParams) (*entity.EditAck, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	entry, ok := c.documents[docURI]
	if !ok {
		c.mu.Unlock()
		return nil, &errors.DocumentNotFoundError{URI: docURI}
	}

	if entry.ownership.Owner != s.UUID {
		owner, epoch := entry.ownership.Owner, entry.ownership.Epoch
		c.mu.Unlock()
		c.stats.Counter("edits_rejected").Inc(1)
		return nil, &errors.NotPreferredOwnerError{URI: docURI, Session: s.UUID, Owner: owner, Epoch: epoch}
	}
	if params.Epoch != entry.ownership.Epoch {
		current := entry.ownership.Epoch
		c.mu.Unlock()
		c.stats.Counter("edits_rejected").Inc(1)
		return nil, &errors.StaleEpochError{URI: docURI, Received: params.Epoch, Current: current}
	}
	if !entry.ownership.ResyncComplete {
		epoch := entry.ownership.Epoch
		c.mu.Unlock()
		c.stats.Counter("edits_rejected").Inc(1)
		return nil, &errors.ResyncRequiredError{URI: docURI, Epoch: epoch}
	}

	text, err := mapper.ApplyContentChanges(entry.text, params.Changes)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	entry.text = text
	entry.version++
	entry.ownership.LastActivity = time.Now()

	version := entry.version
	epoch := entry.ownership.Epoch
	followers := make([]uuid.UUID, 0, len(entry.viewers))
	for id := range entry.viewers {
		if id != s.UUID {
			followers = append(followers, id)
		}
	}
	c.mu.Unlock()

	c.stats.Counter("edits_accepted").Inc(1)

	// Forward the accepted delta: followers apply it locally, servers learn
	// about it through the broker-owned didChange.
	c.broadcast(ctx, followers, func(sCtx context.Context) error {
		return c.gateway.SharedDelta(sCtx, &entity.SharedDeltaEvent{
			URI:     docURI,
			Epoch:   epoch,
			Version: version,
			Changes: params.Changes,
		})
	})
	if err := c.routing.DidChange(ctx, docURI, version, params.Changes); err != nil {
		c.logger.Warnw("notifying server of change", "uri", docURI, "err", err)
	}

	return &entity.EditAck{Epoch: epoch, Version: version}, nil
}

func (c *controller) Resync(ctx context.Context, params *entity.SharedResyncParams) (*entity.ResyncResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.documents[docURI]
	if !ok {
		return nil, &errors.DocumentNotFoundError{URI: docURI}
	}

	if entry.ownership.Owner == s.UUID {
		entry.ownership.ResyncComplete = true
		entry.ownership.LastActivity = time.Now()
	}

	result := &entity.ResyncResult{
		Epoch:   entry.ownership.Epoch,
		Version: entry.version,
	}

	fp := entity.NewFingerprint(entry.text)
	if fp.Hash64 == params.Hash64 && fp.LenChars == params.LenChars {
		// Fingerprint match: reply without a text payload so the editor
		// skips a redundant apply-and-reparse cycle.
		return result, nil
	}

	text := entry.text
	result.Text = &text
	return result, nil
}

func (c *controller) IdleTick(ctx context.Context, now time.Time) error {
	type unlock struct {
		docURI  protocol.DocumentURI
		epoch   uint64
		viewers []uuid.UUID
	}

	c.mu.Lock()
	unlocks := make([]unlock, 0)
	for docURI, entry := range c.documents {
		if entry.ownership.Lock != entity.LockStateLocked {
			continue
		}
		if now.Sub(entry.ownership.LastActivity) <= c.ownerIdle {
			continue
		}
		entry.ownership.Lock = entity.LockStateUnlocked
		unlocks = append(unlocks, unlock{
			docURI:  docURI,
			epoch:   entry.ownership.Epoch,
			viewers: viewerList(entry),
		})
	}
	c.mu.Unlock()

	for _, u := range unlocks {
		c.logger.Infow("idle owner released", "uri", u.docURI)
		c.stats.Counter("idle_unlocks").Inc(1)
		c.broadcast(ctx, u.viewers, func(sCtx context.Context) error {
			return c.gateway.Unlocked(sCtx, &entity.UnlockedEvent{URI: u.docURI, Epoch: u.epoch})
		})
	}
	return nil
}

func (c *controller) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	c.mu.Lock()
	docs := make([]protocol.DocumentURI, 0)
	for docURI, entry := range c.documents {
		if _, ok := entry.viewers[sessionID]; ok {
			docs = append(docs, docURI)
		}
	}
	c.mu.Unlock()

	for _, docURI := range docs {
		if err := c.removeViewer(ctx, docURI, sessionID); err != nil {
			c.logger.Warnw("removing lost session from document", "uri", docURI, "err", err)
		}
	}
	return nil
}

func (c *controller) Owner(ctx context.Context, docURI protocol.DocumentURI) (entity.DocumentOwnership, error) {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return entity.DocumentOwnership{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.documents[docURI]
	if !ok {
		return entity.DocumentOwnership{}, &errors.DocumentNotFoundError{URI: docURI}
	}
	return entry.ownership, nil
}

// removeViewer drops a session from a document, unlocking the document if
// the departing session owned it and discarding the document entirely when
// the last viewer leaves.
func (c *controller) removeViewer(ctx context.Context, docURI protocol.DocumentURI, sessionID uuid.UUID) error {
	c.mu.Lock()
	entry, ok := c.documents[docURI]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	if _, ok := entry.viewers[sessionID]; !ok {
		c.mu.Unlock()
		return nil
	}
	delete(entry.viewers, sessionID)

	if len(entry.viewers) == 0 {
		delete(c.documents, docURI)
		c.mu.Unlock()
		c.updateMetrics()
		// Last viewer across all sessions: the document's LSP-visible
		// lifetime ends here.
		if err := c.routing.DidClose(ctx, docURI); err != nil {
			c.logger.Warnw("notifying server of close", "uri", docURI, "err", err)
		}
		return nil
	}

	var unlocked bool
	var epoch uint64
	var viewers []uuid.UUID
	if entry.ownership.Owner == sessionID && entry.ownership.Lock == entity.LockStateLocked {
		entry.ownership.Lock = entity.LockStateUnlocked
		unlocked = true
		epoch = entry.ownership.Epoch
		viewers = viewerList(entry)
	}
	c.mu.Unlock()

	c.updateMetrics()
	if unlocked {
		c.broadcast(ctx, viewers, func(sCtx context.Context) error {
			return c.gateway.Unlocked(sCtx, &entity.UnlockedEvent{URI: docURI, Epoch: epoch})
		})
	}
	return nil
}

// broadcast delivers one event to each listed session. Delivery failures are
// the gateway's concern (they trigger SessionLost fan-out there).
func (c *controller) broadcast(ctx context.Context, sessions []uuid.UUID, send func(sCtx context.Context) error) {
	for _, id := range sessions {
		sCtx := mapper.SessionUUIDToContext(ctx, id)
		if err := send(sCtx); err != nil {
			c.logger.Debugw("broadcasting to session", "session", id, "err", err)
		}
	}
}

func viewerList(entry *documentEntry) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(entry.viewers))
	for id := range entry.viewers {
		out = append(out, id)
	}
	return out
}

func (c *controller) updateMetrics() {
	c.mu.Lock()
	open := len(c.documents)
	var bytes int
	for _, entry := range c.documents {
		bytes += len(entry.text)
	}
	c.mu.Unlock()
	c.stats.Gauge("open_docs").Update(float64(open))
	c.stats.Gauge("open_bytes").Update(float64(bytes))
}
