// Package webkit adapts WebKitGTK 6 (via puregotk bindings) to the
// engine ports used by the application layer. It owns the persistent
// browsing context, per-engine ephemeral contexts for private tabs,
// settings application, and signal-to-callback translation.
package webkit

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/logging"
)

// BrowsingContext manages the shared WebContext and the persistent
// NetworkSession backing all non-private tabs.
//
// It MUST be created before any WebView: per WebKitGTK 6.0 docs, "the
// first WebKitNetworkSession created becomes the default", and plain
// WebView construction attaches to that default session.
type BrowsingContext struct {
	webContext     *webkit.WebContext
	networkSession *webkit.NetworkSession

	dataDir  string
	cacheDir string

	logger      zerolog.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewBrowsingContext creates the persistent browsing context. Cookies,
// cache, and site storage for non-private tabs live under dataDir and
// cacheDir.
func NewBrowsingContext(ctx context.Context, dataDir, cacheDir string) (*BrowsingContext, error) {
	log := logging.FromContext(ctx).With().Str("component", "browsing-context").Logger()

	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if cacheDir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}

	bc := &BrowsingContext{
		dataDir:  dataDir,
		cacheDir: cacheDir,
		logger:   log,
	}

	if err := bc.initNetworkSession(); err != nil {
		return nil, fmt.Errorf("failed to init network session: %w", err)
	}

	bc.webContext = webkit.WebContextGetDefault()
	if bc.webContext == nil {
		return nil, fmt.Errorf("failed to get WebContext")
	}
	bc.webContext.SetCacheModel(webkit.CacheModelWebBrowserValue)

	bc.initialized = true
	log.Info().
		Str("data_dir", dataDir).
		Str("cache_dir", cacheDir).
		Msg("browsing context initialized")

	return bc, nil
}

// initNetworkSession creates and configures the persistent network session.
func (c *BrowsingContext) initNetworkSession() error {
	session := webkit.NewNetworkSession(&c.dataDir, &c.cacheDir)
	if session == nil {
		return fmt.Errorf("failed to create network session")
	}

	if session.IsEphemeral() {
		return fmt.Errorf("network session is ephemeral despite providing data directories")
	}

	dataManager := session.GetWebsiteDataManager()
	if dataManager == nil {
		return fmt.Errorf("failed to get website data manager")
	}
	if dataManager.IsEphemeral() {
		return fmt.Errorf("website data manager is ephemeral")
	}

	cookieManager := session.GetCookieManager()
	if cookieManager == nil {
		return fmt.Errorf("failed to get cookie manager")
	}

	cookiePath := filepath.Join(c.dataDir, "cookies.db")
	cookieManager.SetPersistentStorage(cookiePath, webkit.CookiePersistentStorageSqliteValue)
	cookieManager.SetAcceptPolicy(webkit.CookiePolicyAcceptNoThirdPartyValue)
	session.SetItpEnabled(true)

	// Fail loads on TLS errors rather than silently proceeding.
	session.SetTlsErrorsPolicy(webkit.TlsErrorsPolicyFailValue)

	// Verify we really became the default session.
	defaultSession := webkit.NetworkSessionGetDefault()
	if defaultSession == nil || defaultSession.IsEphemeral() {
		c.logger.Warn().Msg("default session may not be persistent, was a webview created before the browsing context?")
	}

	c.networkSession = session
	c.logger.Debug().
		Str("cookie_path", cookiePath).
		Msg("persistent network session initialized")

	return nil
}

// NetworkSession returns the persistent NetworkSession.
func (c *BrowsingContext) NetworkSession() *webkit.NetworkSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkSession
}

// DataDir returns the data directory path.
func (c *BrowsingContext) DataDir() string {
	return c.dataDir
}

// CacheDir returns the cache directory path.
func (c *BrowsingContext) CacheDir() string {
	return c.cacheDir
}

// IsInitialized reports whether the context was set up successfully.
func (c *BrowsingContext) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Close performs cleanup. Currently a no-op as WebKit handles cleanup internally.
func (c *BrowsingContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.initialized = false
	c.logger.Debug().Msg("browsing context closed")
	return nil
}
