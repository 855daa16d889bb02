package mapper

import (
	"net/url"
	"path"
	"strings"

	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"go.lsp.dev/protocol"
)

// NormalizeDocumentURI canonicalizes a document URI so that distinct textual
// spellings of the same file resolve to one key. Fragment and query parts are
// stripped, the path is cleaned, and drive letters are lowercased.
func NormalizeDocumentURI(raw protocol.DocumentURI) (protocol.DocumentURI, error) {
	u, err := url.Parse(string(raw))
	if err != nil || u.Scheme == "" {
		return "", &errors.InvalidURIError{Raw: string(raw)}
	}

	u.Fragment = ""
	u.RawQuery = ""

	if u.Scheme == "file" {
		p := path.Clean(u.Path)
		// Windows-style paths arrive as "/C:/...": the drive letter is case
		// insensitive, so pick one casing.
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = "/" + strings.ToLower(p[1:2]) + p[2:]
		}
		u.Path = p
		u.Host = strings.ToLower(u.Host)
	}

	return protocol.DocumentURI(u.String()), nil
}
