package routing

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
)

// Document lifecycle notifications toward language servers. These originate
// only from the shared-state controller's open/edit/close handlers, which own
// the authoritative text; a session reporting local edits never reaches here
// directly. This keeps the server's view of a document tied to broker state,
// so diagnostics stay coherent after the originating session disconnects.

func (c *controller) DidOpen(ctx context.Context, docURI protocol.DocumentURI, languageID string, text string, version int32) error {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return err
	}

	targets := c.serversForDocument(docURI)

	c.mu.Lock()
	if c.docServers[docURI] == nil {
		c.docServers[docURI] = make(map[uuid.UUID]struct{})
	}
	for _, t := range targets {
		c.docServers[docURI][t.ID] = struct{}{}
	}
	c.mu.Unlock()

	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: protocol.LanguageIdentifier(languageID),
			Version:    version,
			Text:       text,
		},
	}

	var errs error
	for _, t := range targets {
		errs = multierr.Append(errs, t.Conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, params))
	}
	return errs
}

func (c *controller) DidChange(ctx context.Context, docURI protocol.DocumentURI, version int32, changes []protocol.TextDocumentContentChangeEvent) error {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return err
	}

	params := &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                version,
		},
		ContentChanges: changes,
	}

	var errs error
	for _, t := range c.openedServers(docURI) {
		errs = multierr.Append(errs, t.Conn.Notify(ctx, protocol.MethodTextDocumentDidChange, params))
	}
	return errs
}

func (c *controller) DidClose(ctx context.Context, docURI protocol.DocumentURI) error {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return err
	}

	params := &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	}

	targets := c.openedServers(docURI)

	c.mu.Lock()
	delete(c.docServers, docURI)
	delete(c.diagnostics, docURI)
	c.mu.Unlock()

	var errs error
	for _, t := range targets {
		errs = multierr.Append(errs, t.Conn.Notify(ctx, protocol.MethodTextDocumentDidClose, params))
	}
	return errs
}

// serversForDocument selects the live servers whose project root contains the
// document. Rootless servers receive every document.
func (c *controller) serversForDocument(docURI protocol.DocumentURI) []*entity.ServerInstance {
	var filename string
	if strings.HasPrefix(string(docURI), "file://") {
		filename = uri.URI(docURI).Filename()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	targets := make([]*entity.ServerInstance, 0, len(c.servers))
	for _, entry := range c.servers {
		if entry.inst.Status == entity.ServerStatusExited || entry.inst.Status == entity.ServerStatusTerminating {
			continue
		}
		root := entry.inst.Config.WorkspaceRoot
		if root == "" || strings.HasPrefix(filename, root) {
			targets = append(targets, entry.inst)
		}
	}
	return targets
}

// openedServers returns the live servers that received didOpen for the document.
func (c *controller) openedServers(docURI protocol.DocumentURI) []*entity.ServerInstance {
	c.mu.Lock()
	defer c.mu.Unlock()

	targets := make([]*entity.ServerInstance, 0, len(c.docServers[docURI]))
	for serverID := range c.docServers[docURI] {
		entry, ok := c.servers[serverID]
		if !ok || entry.inst.Status == entity.ServerStatusExited {
			continue
		}
		targets = append(targets, entry.inst)
	}
	return targets
}
