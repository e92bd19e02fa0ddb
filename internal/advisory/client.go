package advisory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
)

// ErrNonPublicAddress адрес advisory указывает во внутреннюю сеть
var ErrNonPublicAddress = errors.New("advisory host resolves to a non-public address")

// Fetcher HTTP клиент для загрузки страниц с advisory (вендорские бюллетени, блоги, NVD)
type Fetcher struct {
	httpClient *http.Client
	config     FetcherConfig
}

// FetcherConfig конфигурация клиента
type FetcherConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string

	// AllowPrivateNetworks разрешает loopback, частные и link-local адреса
	AllowPrivateNetworks bool
}

// Document загруженная страница
type Document struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
	Truncated   bool
	Duration    time.Duration
}

// NewFetcher создает новый клиент
func NewFetcher(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = 512 << 10
	}
	if config.UserAgent == "" {
		config.UserAgent = "VulnAdvisor-Fetcher/1.0"
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !config.AllowPrivateNetworks {
		// Проверяется уже разрешённый IP, поэтому DNS rebinding не обходит запрет
		dialer.Control = publicOnlyControl
		// Через прокси проверка адреса назначения невозможна
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
			// Редиректы не следуем
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		config: config,
	}
}

// Fetch загружает страницу; тело обрезается до MaxBodyBytes
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	startTime := time.Now()

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parsing advisory URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("advisory URL must be http or https, got %q", rawURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("advisory URL has no host: %q", rawURL)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", f.config.UserAgent)
	httpReq.Header.Set("Accept", "text/html,text/plain,application/json;q=0.9,*/*;q=0.5")

	httpResp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if location := httpResp.Header.Get("Location"); location != "" {
			return nil, fmt.Errorf("advisory returned status %d (redirect to %s is not followed)", httpResp.StatusCode, location)
		}
		return nil, fmt.Errorf("advisory returned status %d", httpResp.StatusCode)
	}

	// Читаем на байт больше лимита, чтобы понять, было ли обрезание
	body, err := io.ReadAll(io.LimitReader(httpResp.Body, f.config.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	truncated := int64(len(body)) > f.config.MaxBodyBytes
	if truncated {
		body = truncateUTF8(body, int(f.config.MaxBodyBytes))
	}

	return &Document{
		URL:         parsed.String(),
		StatusCode:  httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        string(body),
		Truncated:   truncated,
		Duration:    time.Since(startTime),
	}, nil
}

// FetchText загружает страницу и возвращает читаемый текст для анализа
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	doc, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := doc.Body
	if IsHTML(doc.ContentType, doc.Body) {
		text, err = ExtractText(doc.Body)
		if err != nil {
			return "", fmt.Errorf("extracting text from %s: %w", doc.URL, err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("advisory page has no readable text")
	}
	return text, nil
}

func publicOnlyControl(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%w: %s", ErrNonPublicAddress, host)
	}
	if isNonPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrNonPublicAddress, ip)
	}
	return nil
}

func isNonPublicIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

// truncateUTF8 обрезает до limit байт, не разрывая многобайтовый символ
func truncateUTF8(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}
