package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Logger       *logger.Logger
	// Backoff is the base delay between attempts; attempt i waits i*i*Backoff.
	Backoff time.Duration

	jar    http.CookieJar
	client *http.Client
	mu     sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	var proxies []string
	if cfg.Network.Enabled {
		proxies = cfg.Network.Proxies
	}

	// cookiejar.New only fails on a bad PublicSuffixList option.
	jar, _ := cookiejar.New(nil)

	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(proxies, cfg.Network.UserAgent, log),
		Logger:       log.Named("NetworkManager"),
		Backoff:      time.Second,
		jar:          jar,
	}
	nm.client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() *http.Client {
	transport := &http.Transport{}

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Jar:       nm.jar,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) currentClient() *http.Client {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return nm.client
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	client := nm.createClient()

	nm.mu.Lock()
	nm.client = client
	nm.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and proxy rotation.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	reqUrl.RawQuery = q.Encode()
	finalUrl := reqUrl.String()

	maxRetries := nm.Config.Network.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i*i) * nm.Backoff):
			case <-ctx.Done():
				return nil, helpers.NewNetworkError("request cancelled", ctx.Err())
			}
			nm.rotateProxy()
		}

		body, err := nm.do(ctx, finalUrl)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if statusErr, ok := err.(*helpers.HTTPStatusError); ok {
			if !statusErr.Retryable() {
				return nil, statusErr
			}
			nm.Logger.Info("Request blocked or failed (%d), attempt %d/%d", statusErr.StatusCode, i+1, maxRetries+1)
			continue
		}
		if ctx.Err() != nil {
			return nil, helpers.NewNetworkError("request cancelled", ctx.Err())
		}
		nm.Logger.Info("Request failed (attempt %d/%d): %v", i+1, maxRetries+1, err)
	}

	return nil, helpers.NewNetworkError("max retries exceeded", lastErr)
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) do(ctx context.Context, finalUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())

	resp, err := nm.currentClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &helpers.HTTPStatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// -----------------------------------------------------------------------------

// Visit fetches urlStr once so that any Set-Cookie headers land in the jar.
func (nm *NetworkManager) Visit(ctx context.Context, urlStr string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := nm.currentClient().Do(req)
	if err != nil {
		return helpers.NewNetworkError(fmt.Sprintf("visit %s", urlStr), err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
